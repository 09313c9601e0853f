package models

import "github.com/kokiddp/elkcms/internal/meta"

// RegisterContentModels places every declared content model in the default
// registry. Called once at startup; a malformed SEO declaration panics here,
// which is the intended fail-loudly-at-load behavior.
func RegisterContentModels() {
	meta.MustRegister(&ArticleModel{})
	meta.MustRegister(&PageModel{})
	meta.MustRegister(&CategoryModel{})
	meta.MustRegister(&TagModel{})
}
