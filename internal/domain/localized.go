package domain

// LocalizedText is a bilingual string pair. The API serves both languages and
// leaves selection to the client.
type LocalizedText struct {
	En string `json:"en"`
	Ar string `json:"ar"`
}

// IsZero reports whether both languages are empty.
func (t LocalizedText) IsZero() bool {
	return t.En == "" && t.Ar == ""
}
