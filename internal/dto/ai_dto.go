package dto

type EnhanceTextRequest struct {
	Text string `json:"text"`
}

type EnhanceTextResponse struct {
	EnhancedText string `json:"enhanced_text"`
}

type TranslateRequest struct {
	Text     string `json:"text"`
	Language string `json:"language" validate:"required,max=50"`
}

type TranslateResponse struct {
	Translation string `json:"translation"`
}

type AskRequest struct {
	Document string `json:"document"`
	Question string `json:"question" validate:"required,max=2000"`
}

type AskResponse struct {
	Answer string `json:"answer"`
}
