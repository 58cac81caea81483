package pages

import "github.com/Foragefoxoffice/Cotco-backend/internal/app/system/merge"

var footerPage = Page{
	Type:    "footer",
	Path:    "/footerpage",
	Entity:  "footer",
	Message: "Footer updated successfully",
	Sections: []merge.SectionSpec{
		{
			Key:    "footer",
			Folder: "footer",
			Fields: []merge.Field{
				{Name: "footerLogo", Kind: merge.File, MaxBytes: 2 << 20},
				{Name: "copyrights", Kind: merge.Text},
			},
		},
		{
			Key:     "footerSocials",
			Folder:  "footer/socials",
			Records: &merge.Records{Files: []merge.RecordFile{{Field: "iconImage", IndexKey: "iconFile_%d"}}},
		},
	},
}
