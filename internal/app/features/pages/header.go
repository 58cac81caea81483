package pages

import "github.com/Foragefoxoffice/Cotco-backend/internal/app/system/merge"

var headerPage = Page{
	Type:    "header",
	Path:    "/headerpage",
	Entity:  "header",
	Message: "Header updated successfully",
	Sections: []merge.SectionSpec{
		{
			Key:    "header",
			Folder: "header",
			Fields: []merge.Field{
				{Name: "headerLogo", Kind: merge.File, MaxBytes: 2 << 20},
			},
		},
	},
}
