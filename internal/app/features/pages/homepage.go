package pages

import (
	"path"
	"strings"

	"github.com/Foragefoxoffice/Cotco-backend/internal/app/system/merge"
)

var homePage = Page{
	Type:    "homepage",
	Path:    "/homepage",
	Entity:  "homepage",
	Message: "Homepage updated successfully",
	Sections: []merge.SectionSpec{
		{
			Key:    "heroSection",
			Folder: "homepage",
			Fields: []merge.Field{
				{Name: "bgType", Kind: merge.Text},
				{Name: "bgUrl", Kind: merge.File, UploadKey: "bgFile"},
				{Name: "heroTitle", Kind: merge.Lang},
				{Name: "heroDescription", Kind: merge.Lang},
				{Name: "heroButtonText", Kind: merge.Lang},
				{Name: "heroButtonLink", Kind: merge.Lang},
			},
		},
		{
			Key:    "whoWeAreSection",
			Folder: "homepage",
			Fields: []merge.Field{
				{Name: "whoWeAreheading", Kind: merge.Lang},
				{Name: "whoWeAredescription", Kind: merge.Lang},
				{Name: "whoWeArebannerImage", Kind: merge.File, UploadKey: "whoWeAreFile"},
				{Name: "whoWeArebuttonText", Kind: merge.Lang},
				{Name: "whoWeArebuttonLink", Kind: merge.Lang},
			},
		},
		{
			Key:    "whatWeDoSection",
			Folder: "homepage",
			Fields: []merge.Field{
				{Name: "whatWeDoTitle", Kind: merge.Lang},
				{Name: "whatWeDoDec", Kind: merge.Lang},
				{Name: "whatWeDoIcon1", Kind: merge.File},
				{Name: "whatWeDoIcon2", Kind: merge.File},
				{Name: "whatWeDoIcon3", Kind: merge.File},
				{Name: "whatWeDoImg1", Kind: merge.File},
				{Name: "whatWeDoImg2", Kind: merge.File},
				{Name: "whatWeDoImg3", Kind: merge.File},
				{Name: "whatWeDoTitle1", Kind: merge.Lang},
				{Name: "whatWeDoTitle2", Kind: merge.Lang},
				{Name: "whatWeDoTitle3", Kind: merge.Lang},
				{Name: "whatWeDoDes1", Kind: merge.Lang},
				{Name: "whatWeDoDes2", Kind: merge.Lang},
				{Name: "whatWeDoDes3", Kind: merge.Lang},
			},
		},
		{
			Key:    "companyLogosSection",
			Folder: "homepage",
			Fields: []merge.Field{
				{
					Name:    "logos",
					Folder:  "partners",
					Records: &merge.Records{Files: []merge.RecordFile{{Field: "url", IndexKey: "partnerLogo%d"}}},
				},
			},
		},
		{
			Key:    "definedUsSection",
			Folder: "homepage",
			Fields: []merge.Field{
				{Name: "definedUsLogo1", Kind: merge.File},
				{Name: "definedUsTitle1", Kind: merge.Lang},
				{Name: "definedUsDes1", Kind: merge.Lang},
				{Name: "definedUsLogo2", Kind: merge.File},
				{Name: "definedUsTitle2", Kind: merge.Lang},
				{Name: "definedUsDes2", Kind: merge.Lang},
				{Name: "definedUsLogo3", Kind: merge.File},
				{Name: "definedUsTitle3", Kind: merge.Lang},
				{Name: "definedUsDes3", Kind: merge.Lang},
				{Name: "definedUsLogo4", Kind: merge.File},
				{Name: "definedUsTitle4", Kind: merge.Lang},
				{Name: "definedUsDes4", Kind: merge.Lang},
				{Name: "definedUsLogo5", Kind: merge.File},
				{Name: "definedUsTitle5", Kind: merge.Lang},
				{Name: "definedUsDes5", Kind: merge.Lang},
				{Name: "definedUsLogo6", Kind: merge.File},
				{Name: "definedUsTitle6", Kind: merge.Lang},
				{Name: "definedUsDes6", Kind: merge.Lang},
			},
		},
		{
			Key:    "coreValuesSection",
			Folder: "homepage",
			Fields: []merge.Field{
				{Name: "coreTitle", Kind: merge.Lang},
				{Name: "coreTitle1", Kind: merge.Lang},
				{Name: "coreDes1", Kind: merge.Lang},
				{Name: "coreTitle2", Kind: merge.Lang},
				{Name: "coreDes2", Kind: merge.Lang},
				{Name: "coreTitle3", Kind: merge.Lang},
				{Name: "coreDes3", Kind: merge.Lang},
				{Name: "coreTitle4", Kind: merge.Lang},
				{Name: "coreDes4", Kind: merge.Lang},
				{Name: "coreImage", Kind: merge.File},
			},
		},
		seoSection("homepage"),
	},
	Finalize: classifyHeroMedia,
}

var videoExts = map[string]bool{
	".mp4": true, ".webm": true, ".mov": true, ".avi": true,
}

// classifyHeroMedia keeps bgType consistent with the stored hero media, so
// a fresh video upload flips the section to video without a second request.
func classifyHeroMedia(sections map[string]any) {
	hero, ok := sections["heroSection"].(map[string]any)
	if !ok {
		return
	}
	url, ok := hero["bgUrl"].(string)
	if !ok || url == "" {
		return
	}
	if videoExts[strings.ToLower(path.Ext(url))] {
		hero["bgType"] = "video"
	} else {
		hero["bgType"] = "image"
	}
}
