package pages

import "github.com/Foragefoxoffice/Cotco-backend/internal/app/system/merge"

var machineCMSPage = Page{
	Type:        "machinecms",
	Path:        "/machinecms",
	Entity:      "machinePage",
	Message:     "Machine CMS page updated successfully",
	TeamSection: "machineTeamSection.aboutTeam",
	Sections: []merge.SectionSpec{
		{
			Key:    "heroSection",
			Folder: "machinecms",
			Fields: []merge.Field{
				{Name: "heroVideo", Kind: merge.File},
				{Name: "heroTitle", Kind: merge.Lang},
			},
		},
		{
			Key:    "introSection",
			Folder: "machinecms",
			Fields: []merge.Field{
				{Name: "introDescription", Kind: merge.Lang},
			},
		},
		{
			Key:    "benefitsSection",
			Folder: "machinecms",
			Fields: []merge.Field{
				{Name: "benefitTitle", Kind: merge.Lang},
				{Name: "benefitImage", Kind: merge.File},
				// Per-language bullet lists.
				{Name: "benefitBullets", Kind: merge.Raw},
			},
		},
		{Key: "machineTeamSection", KeyedMap: true},
		seoSection("machinecms"),
	},
}
