package pages

import "github.com/Foragefoxoffice/Cotco-backend/internal/app/system/merge"

var cottonPage = Page{
	Type:        "cotton",
	Path:        "/cottonpage",
	Entity:      "cotton",
	Message:     "Cotton page updated successfully",
	TeamSection: "cottonTeam.aboutTeam",
	Sections: []merge.SectionSpec{
		{
			Key:    "cottonBanner",
			Folder: "cotton/banner",
			Fields: []merge.Field{
				{Name: "cottonBannerImg", Kind: merge.File},
				{Name: "cottonBannerTitle", Kind: merge.Lang},
				{Name: "cottonBannerDes", Kind: merge.Lang},
				{Name: "cottonBannerOverview", Kind: merge.Lang},
				{Name: "cottonBannerSlideImg", Kind: merge.GalleryOverwrite, Folder: "cotton/banner/slides"},
			},
		},
		{
			Key:    "cottonSupplier",
			Folder: "cotton/suppliers",
			Records: &merge.Records{Files: []merge.RecordFile{
				{Field: "cottonSupplierLogo", Folder: "cotton/suppliers/logos"},
				{Field: "cottonSupplierBg", Folder: "cotton/suppliers/bg"},
			}},
		},
		{
			Key:    "cottonTrust",
			Folder: "cotton/trust",
			Fields: []merge.Field{
				{Name: "cottonTrustTitle", Kind: merge.Lang},
				{Name: "cottonTrustDes", Kind: merge.Lang},
				{Name: "cottonTrustLogo", Kind: merge.GalleryAppend},
				{Name: "cottonTrustImg", Kind: merge.File},
			},
		},
		{
			Key:    "cottonMember",
			Folder: "cotton/member",
			Fields: []merge.Field{
				{Name: "cottonMemberTitle", Kind: merge.Lang},
				{Name: "cottonMemberButtonText", Kind: merge.Lang},
				{Name: "cottonMemberButtonLink", Kind: merge.Text},
				{Name: "cottonMemberImg", Kind: merge.GalleryAppend},
			},
		},
		{Key: "cottonTeam", KeyedMap: true},
		seoSection("cotton"),
	},
}
