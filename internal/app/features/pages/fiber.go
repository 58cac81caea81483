package pages

import "github.com/Foragefoxoffice/Cotco-backend/internal/app/system/merge"

var fiberPage = Page{
	Type:    "fiber",
	Path:    "/fiberpage",
	Entity:  "fiber",
	Message: "Fiber Page updated successfully",
	Sections: []merge.SectionSpec{
		{
			Key:    "fiberBanner",
			Folder: "fiber",
			Fields: []merge.Field{
				{Name: "fiberBannerMedia", Kind: merge.File},
				{Name: "fiberBannerTitle", Kind: merge.Lang},
				{Name: "fiberBannerDes", Kind: merge.Lang},
				{Name: "fiberBannerContent", Kind: merge.Lang},
				{Name: "fiberBannerSubTitle", Kind: merge.Lang},
				{Name: "fiberBannerImg", Kind: merge.File},
			},
		},
		{
			Key:    "fiberSustainability",
			Folder: "fiber",
			Fields: []merge.Field{
				{Name: "fiberSustainabilityTitle", Kind: merge.Lang},
				{Name: "fiberSustainabilitySubText", Kind: merge.Lang},
				{Name: "fiberSustainabilityDes", Kind: merge.Lang},
				{Name: "fiberSustainabilityImg", Kind: merge.File},
				{Name: "fiberSustainabilitySubTitle1", Kind: merge.Lang},
				{Name: "fiberSustainabilitySubDes1", Kind: merge.Lang},
				{Name: "fiberSustainabilitySubTitle2", Kind: merge.Lang},
				{Name: "fiberSustainabilitySubDes2", Kind: merge.Lang},
				{Name: "fiberSustainabilitySubTitle3", Kind: merge.Lang},
				{Name: "fiberSustainabilitySubDes3", Kind: merge.Lang},
			},
		},
		{
			Key:    "fiberChooseUs",
			Folder: "fiber",
			Fields: []merge.Field{
				{Name: "fiberChooseUsTitle", Kind: merge.Lang},
				{Name: "fiberChooseUsDes", Kind: merge.Lang},
				// Box backgrounds and icons come from the icon picker as
				// plain URLs, never as uploads.
				{Name: "fiberChooseUsBox", Kind: merge.Raw},
			},
		},
		{
			Key:    "fiberSupplier",
			Folder: "fiber",
			Fields: []merge.Field{
				{Name: "fiberSupplierTitle", Kind: merge.Lang},
				{Name: "fiberSupplierDes", Kind: merge.Raw},
				{Name: "fiberSupplierImg", Kind: merge.GalleryOverwrite},
			},
		},
		{
			Key:    "fiberProducts",
			Folder: "fiber",
			Fields: []merge.Field{
				{Name: "fiberProduct", Kind: merge.Raw},
				{Name: "fiberProductBottomCon", Kind: merge.Lang},
				{Name: "fiberProductButtonText", Kind: merge.Lang},
				{Name: "fiberProductButtonLink", Kind: merge.Text},
			},
		},
		{
			Key:    "fiberCertification",
			Folder: "fiber",
			Fields: []merge.Field{
				{Name: "fiberCertificationTitle", Kind: merge.Lang},
				{Name: "fiberCertificationButtonText", Kind: merge.Lang},
				{Name: "fiberCertificationButtonLink", Kind: merge.Text},
				{Name: "fiberCertificationImg", Kind: merge.GalleryOverwrite},
			},
		},
		seoSection("fiber"),
	},
}
