package service

import "mural/internal/core/domain"

// PromptResolver maps style names to the instruction sent to the stylization service.
type PromptResolver struct{}

func NewPromptResolver() *PromptResolver {
	return &PromptResolver{}
}

// Resolve returns the catalog prompt for style, or style itself when it is not in the catalog.
func (r *PromptResolver) Resolve(style string) string {
	if s, ok := domain.LookupStyle(style); ok {
		return s.PromptText
	}
	return style
}
