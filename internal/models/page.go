package models

import "github.com/kokiddp/elkcms/internal/meta"

// PageModel is a static page built with the visual editor.
type PageModel struct {
	Title     string `cms:"type=string,label=Title,required,translatable,maxlen=200"`
	Subtitle  string `cms:"type=string,label=Subtitle,translatable"`
	Layout    string `cms:"type=select,label=Layout,options=default|full-width|sidebar,default=default"`
	Content   string `cms:"type=pagebuilder,label=Content,translatable"`
	ShowInNav bool   `cms:"type=boolean,label=Show in navigation,default=1"`
	NavOrder  int    `cms:"type=integer,label=Navigation order,default=0"`
}

func (PageModel) ContentModelOptions() meta.ContentModel {
	return meta.ContentModel{
		Label:       "Pages",
		Icon:        "file",
		Supports:    []string{"translations", "seo", "blocks"},
		Description: "Static pages composed in the page builder",
	}
}

func (PageModel) SEOOptions() meta.SEO {
	return meta.MustSEO(meta.SEO{
		SchemaType:        "WebPage",
		SitemapPriority:   "0.6",
		SitemapChangeFreq: "monthly",
		MetaFields:        []string{"title", "subtitle"},
	})
}
