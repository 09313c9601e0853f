package models

import "github.com/kokiddp/elkcms/internal/meta"

// ArticleModel is the blog-post content type shipped with the CMS.
type ArticleModel struct {
	Title       string `cms:"type=string,label=Title,required,translatable,maxlen=200"`
	Excerpt     string `cms:"type=text,label=Excerpt,translatable,help=Shown in listings and meta descriptions"`
	Body        string `cms:"type=wysiwyg,label=Body,required,translatable"`
	CoverImage  string `cms:"type=image,label=Cover image"`
	ReadingTime int    `cms:"type=integer,label=Reading time,help=Minutes; estimated when left empty"`
	Featured    bool   `cms:"type=boolean,label=Featured,default=0"`
	PublishOn   string `cms:"type=datetime,label=Publish on"`
	Meta        string `cms:"type=json,label=Extra metadata"`

	Category string `cmsrel:"type=belongsTo,model=Category,label=Category,eager"`
	Tags     string `cmsrel:"type=belongsToMany,model=Tag,label=Tags,fields=sort:integer;featured:boolean:nullable"`
}

func (ArticleModel) ContentModelOptions() meta.ContentModel {
	return meta.ContentModel{
		Label:       "Articles",
		Icon:        "newspaper",
		Supports:    []string{"translations", "seo", "media", "blocks"},
		Description: "Long-form blog articles",
	}
}

func (ArticleModel) SEOOptions() meta.SEO {
	return meta.MustSEO(meta.SEO{
		SchemaType:        "Article",
		SchemaProperties:  []string{"headline", "datePublished", "author"},
		SitemapPriority:   "0.8",
		SitemapChangeFreq: "weekly",
		MetaFields:        []string{"title", "excerpt"},
		EnableBreadcrumbs: true,
	})
}
