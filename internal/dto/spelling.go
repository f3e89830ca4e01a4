package dto

import "github.com/moicalder/moimac.com/internal/spelling"

type SpellingListsResponse struct {
	Lists []spelling.List `json:"lists"`
}

func NewSpellingListsResponse(lists []spelling.List) SpellingListsResponse {
	if lists == nil {
		lists = []spelling.List{}
	}
	return SpellingListsResponse{Lists: lists}
}
