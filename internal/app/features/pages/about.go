package pages

import "github.com/Foragefoxoffice/Cotco-backend/internal/app/system/merge"

var aboutPage = Page{
	Type:        "about",
	Path:        "/aboutpage",
	Entity:      "about",
	Message:     "About Page updated successfully",
	TeamSection: "aboutTeam",
	Sections: []merge.SectionSpec{
		{
			Key:    "aboutHero",
			Folder: "about",
			Fields: []merge.Field{
				{Name: "aboutTitle", Kind: merge.Lang},
				{Name: "aboutBanner", Kind: merge.File, UploadKey: "aboutBannerFile"},
			},
		},
		{
			Key:    "aboutOverview",
			Folder: "about",
			Fields: []merge.Field{
				{Name: "aboutOverviewImg", Kind: merge.File, UploadKey: "aboutOverviewFile"},
				{Name: "aboutOverviewTitle", Kind: merge.Lang},
				{Name: "aboutOverviewDes", Kind: merge.Lang},
			},
		},
		{
			Key:    "aboutFounder",
			Folder: "about",
			Fields: []merge.Field{
				{Name: "aboutFounderTitle", Kind: merge.Lang},
				{Name: "aboutFounderName", Kind: merge.Lang},
				{Name: "aboutFounderDes", Kind: merge.Lang},
				{Name: "founderImg1", Kind: merge.File},
				{Name: "founderImg2", Kind: merge.File},
				{Name: "founderImg3", Kind: merge.File},
			},
		},
		{
			Key:    "aboutMissionVission",
			Folder: "about",
			Fields: []merge.Field{
				{Name: "aboutMissionVissionTitle", Kind: merge.Lang},
				{Name: "aboutMissionVissionSubhead1", Kind: merge.Lang},
				{Name: "aboutMissionVissionDes1", Kind: merge.Lang},
				{Name: "aboutMissionVissionSubhead2", Kind: merge.Lang},
				{Name: "aboutMissionVissionDes2", Kind: merge.Lang},
				{Name: "aboutMissionVissionSubhead3", Kind: merge.Lang},
				{Name: "aboutMissionVissionDes3", Kind: merge.Lang},
				{Name: "aboutMissionVissionBoxCount1", Kind: merge.Raw},
				{Name: "aboutMissionBoxDes1", Kind: merge.Lang},
				{Name: "aboutMissionVissionBoxCount2", Kind: merge.Raw},
				{Name: "aboutMissionBoxDes2", Kind: merge.Lang},
				{Name: "aboutMissionVissionBoxCount3", Kind: merge.Raw},
				{Name: "aboutMissionBoxDes3", Kind: merge.Lang},
			},
		},
		{
			Key:    "aboutCore",
			Folder: "about",
			Fields: []merge.Field{
				{Name: "aboutCoreBg1", Kind: merge.File},
				{Name: "aboutCoreTitle1", Kind: merge.Lang},
				{Name: "aboutCoreDes1", Kind: merge.Lang},
				{Name: "aboutCoreBg2", Kind: merge.File},
				{Name: "aboutCoreTitle2", Kind: merge.Lang},
				{Name: "aboutCoreDes2", Kind: merge.Lang},
				{Name: "aboutCoreBg3", Kind: merge.File},
				{Name: "aboutCoreTitle3", Kind: merge.Lang},
				{Name: "aboutCoreDes3", Kind: merge.Lang},
			},
		},
		{
			Key:     "aboutHistory",
			Folder:  "history",
			Records: &merge.Records{Files: []merge.RecordFile{{Field: "image", SharedKey: "historyImages"}}},
		},
		{Key: "aboutTeam", KeyedMap: true},
		{
			Key:    "aboutAlliances",
			Folder: "alliances",
			Fields: []merge.Field{
				{Name: "aboutAlliancesImg", Kind: merge.GalleryAppend, UploadKey: "aboutAlliancesFiles"},
			},
		},
		seoSection("about"),
	},
}
