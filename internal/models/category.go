package models

import "github.com/kokiddp/elkcms/internal/meta"

// CategoryModel groups articles.
type CategoryModel struct {
	Name        string `cms:"type=string,label=Name,required,unique,maxlen=100"`
	Description string `cms:"type=text,label=Description,translatable"`
	Color       string `cms:"type=string,label=Color,maxlen=7,placeholder=#aabbcc"`

	Articles string `cmsrel:"type=hasMany,model=Article,label=Articles"`
}

func (CategoryModel) ContentModelOptions() meta.ContentModel {
	return meta.ContentModel{
		Label:    "Categories",
		Icon:     "folder",
		Supports: []string{"translations"},
		Hidden:   true,
	}
}

// TagModel labels articles; attached through the article's pivot table.
type TagModel struct {
	Name string `cms:"type=string,label=Name,required,unique,maxlen=50"`

	Articles string `cmsrel:"type=belongsToMany,model=Article,label=Articles"`
}

func (TagModel) ContentModelOptions() meta.ContentModel {
	return meta.ContentModel{
		Label:    "Tags",
		Icon:     "tag",
		Supports: []string{},
		Hidden:   true,
	}
}
