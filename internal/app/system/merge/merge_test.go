package merge

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"reflect"
	"testing"
)

// fakeSink records saves and returns deterministic URLs without touching
// disk. When failing is set every save errors.
type fakeSink struct {
	failing bool
	saved   []string
	n       int
}

func (s *fakeSink) Save(_ context.Context, fh *multipart.FileHeader, folder string) (string, error) {
	if s.failing {
		return "", errors.New("disk full")
	}
	s.n++
	url := fmt.Sprintf("/uploads/%s/%d-%s", folder, s.n, fh.Filename)
	s.saved = append(s.saved, url)
	return url, nil
}

func fh(name string) *multipart.FileHeader {
	return &multipart.FileHeader{Filename: name}
}

var heroSpec = SectionSpec{
	Key:    "aboutHero",
	Folder: "about",
	Fields: []Field{
		{Name: "aboutTitle", Kind: Lang},
		{Name: "aboutBanner", Kind: File},
	},
}

func TestSection_NoOpWhenPayloadAbsent(t *testing.T) {
	existing := map[string]any{
		"aboutTitle":  map[string]any{"en": "About", "vi": "Gioi thieu"},
		"aboutBanner": "/uploads/about/banner.jpg",
	}

	got, warnings := Section(context.Background(), &fakeSink{}, heroSpec, existing, existing, nil)

	if len(warnings) != 0 {
		t.Fatalf("warnings = %v, want none", warnings)
	}
	if !reflect.DeepEqual(got, existing) {
		t.Errorf("merge changed an untouched section:\n got %v\nwant %v", got, existing)
	}
}

func TestSection_LangReplaceAndClear(t *testing.T) {
	existing := map[string]any{
		"aboutTitle": map[string]any{"en": "Old", "vi": "Cu"},
	}
	incoming := map[string]any{
		"aboutTitle": map[string]any{"en": "New", "vi": ""},
	}

	got, _ := Section(context.Background(), &fakeSink{}, heroSpec, incoming, existing, nil)

	want := map[string]any{"en": "New", "vi": ""}
	if !reflect.DeepEqual(got["aboutTitle"], want) {
		t.Errorf("aboutTitle = %v, want %v", got["aboutTitle"], want)
	}
}

func TestSection_LegacyVNKeyMigrated(t *testing.T) {
	incoming := map[string]any{
		"aboutTitle": map[string]any{"en": "Hi", "vn": "Chao"},
	}

	got, _ := Section(context.Background(), &fakeSink{}, heroSpec, incoming, nil, nil)

	want := map[string]any{"en": "Hi", "vi": "Chao"}
	if !reflect.DeepEqual(got["aboutTitle"], want) {
		t.Errorf("aboutTitle = %v, want %v", got["aboutTitle"], want)
	}
}

func TestSection_FileUploadWinsOverBody(t *testing.T) {
	sink := &fakeSink{}
	existing := map[string]any{"aboutBanner": "/uploads/about/old.jpg"}
	incoming := map[string]any{"aboutBanner": "/uploads/about/stale.jpg"}
	files := Files{"aboutBannerFile": {fh("new.jpg")}}

	got, warnings := Section(context.Background(), sink, heroSpec, incoming, existing, files)

	if len(warnings) != 0 {
		t.Fatalf("warnings = %v", warnings)
	}
	if got["aboutBanner"] != sink.saved[0] {
		t.Errorf("aboutBanner = %v, want freshly uploaded %v", got["aboutBanner"], sink.saved[0])
	}
}

func TestSection_FileExplicitClear(t *testing.T) {
	existing := map[string]any{"aboutBanner": "/uploads/about/old.jpg"}
	incoming := map[string]any{"aboutBanner": ""}

	got, _ := Section(context.Background(), &fakeSink{}, heroSpec, incoming, existing, nil)

	if got["aboutBanner"] != "" {
		t.Errorf("aboutBanner = %v, want cleared", got["aboutBanner"])
	}
}

func TestSection_FileFallsBackToExisting(t *testing.T) {
	existing := map[string]any{"aboutBanner": "/uploads/about/old.jpg"}

	got, _ := Section(context.Background(), &fakeSink{}, heroSpec, map[string]any{}, existing, nil)

	if got["aboutBanner"] != "/uploads/about/old.jpg" {
		t.Errorf("aboutBanner = %v, want stored value kept", got["aboutBanner"])
	}
}

func TestSection_FailedUploadKeepsPreviousAndWarns(t *testing.T) {
	existing := map[string]any{"aboutBanner": "/uploads/about/old.jpg"}
	files := Files{"aboutBannerFile": {fh("new.jpg")}}

	got, warnings := Section(context.Background(), &fakeSink{failing: true}, heroSpec, map[string]any{}, existing, files)

	if got["aboutBanner"] != "/uploads/about/old.jpg" {
		t.Errorf("aboutBanner = %v, want previous value kept", got["aboutBanner"])
	}
	if len(warnings) != 1 {
		t.Errorf("warnings = %v, want one", warnings)
	}
}

func TestSection_OverwriteGallery(t *testing.T) {
	spec := SectionSpec{
		Key:    "cottonBanner",
		Folder: "cotton",
		Fields: []Field{
			{Name: "cottonBannerSlideImg", Kind: GalleryOverwrite, UploadKey: "cottonBannerFiles"},
		},
	}
	sink := &fakeSink{}
	existing := map[string]any{"cottonBannerSlideImg": []any{"/uploads/cotton/a.jpg", "/uploads/cotton/b.jpg"}}
	files := Files{"cottonBannerFiles": {fh("x.jpg")}}

	got, _ := Section(context.Background(), sink, spec, map[string]any{}, existing, files)

	slides := got["cottonBannerSlideImg"].([]any)
	if len(slides) != 1 || slides[0] != sink.saved[0] {
		t.Errorf("slides = %v, want only the fresh upload", slides)
	}
}

func TestSection_OverwriteGalleryExplicitListWins(t *testing.T) {
	spec := SectionSpec{
		Key:    "cottonBanner",
		Folder: "cotton",
		Fields: []Field{
			{Name: "cottonBannerSlideImg", Kind: GalleryOverwrite, UploadKey: "cottonBannerFiles"},
		},
	}
	existing := map[string]any{"cottonBannerSlideImg": []any{"/uploads/cotton/a.jpg", "/uploads/cotton/b.jpg"}}

	// A submitted list replaces the gallery even when it shrinks it.
	incoming := map[string]any{"cottonBannerSlideImg": []any{"/uploads/cotton/b.jpg"}}
	got, _ := Section(context.Background(), &fakeSink{}, spec, incoming, existing, nil)
	want := []any{"/uploads/cotton/b.jpg"}
	if !reflect.DeepEqual(got["cottonBannerSlideImg"], want) {
		t.Errorf("slides = %v, want %v", got["cottonBannerSlideImg"], want)
	}

	// An empty list empties it outright.
	incoming = map[string]any{"cottonBannerSlideImg": []any{}}
	got, _ = Section(context.Background(), &fakeSink{}, spec, incoming, existing, nil)
	if slides := got["cottonBannerSlideImg"].([]any); len(slides) != 0 {
		t.Errorf("slides = %v, want the gallery cleared", slides)
	}

	// Absent key still means "leave it alone".
	got, _ = Section(context.Background(), &fakeSink{}, spec, map[string]any{}, existing, nil)
	if !reflect.DeepEqual(got["cottonBannerSlideImg"], existing["cottonBannerSlideImg"]) {
		t.Errorf("slides = %v, want the stored gallery", got["cottonBannerSlideImg"])
	}
}

func TestSection_FileRejectsNonUploadValue(t *testing.T) {
	existing := map[string]any{"aboutBanner": "/uploads/about/banner.jpg"}
	incoming := map[string]any{"aboutBanner": "data:image/png;base64,AAAA"}

	got, _ := Section(context.Background(), &fakeSink{}, heroSpec, incoming, existing, nil)

	if got["aboutBanner"] != "/uploads/about/banner.jpg" {
		t.Errorf("aboutBanner = %v, want the stored path kept", got["aboutBanner"])
	}
}

func TestSection_AppendGalleryGrows(t *testing.T) {
	spec := SectionSpec{
		Key:    "aboutAlliances",
		Folder: "alliances",
		Fields: []Field{
			{Name: "aboutAlliancesImg", Kind: GalleryAppend, UploadKey: "aboutAlliancesFiles"},
		},
	}
	sink := &fakeSink{}
	existing := map[string]any{"aboutAlliancesImg": []any{"/uploads/alliances/a.jpg"}}
	files := Files{"aboutAlliancesFiles": {fh("b.jpg"), fh("c.jpg")}}

	got, _ := Section(context.Background(), sink, spec, map[string]any{}, existing, files)

	imgs := got["aboutAlliancesImg"].([]any)
	if len(imgs) != 3 {
		t.Fatalf("gallery length = %d, want 3", len(imgs))
	}
	if imgs[0] != "/uploads/alliances/a.jpg" {
		t.Errorf("existing entry lost: %v", imgs)
	}
}

func TestSection_AppendGalleryNeverShrinks(t *testing.T) {
	spec := SectionSpec{
		Key:    "aboutAlliances",
		Folder: "alliances",
		Fields: []Field{
			{Name: "aboutAlliancesImg", Kind: GalleryAppend},
		},
	}
	existing := map[string]any{"aboutAlliancesImg": []any{"/uploads/alliances/a.jpg", "/uploads/alliances/b.jpg"}}
	incoming := map[string]any{"aboutAlliancesImg": []any{"/uploads/alliances/a.jpg"}}

	got, _ := Section(context.Background(), &fakeSink{}, spec, incoming, existing, nil)

	imgs := got["aboutAlliancesImg"].([]any)
	if len(imgs) < 2 {
		t.Errorf("gallery shrank to %v", imgs)
	}
}

func TestSection_UnknownStoredKeysSurvive(t *testing.T) {
	existing := map[string]any{
		"aboutTitle":  map[string]any{"en": "About", "vi": ""},
		"legacyField": "kept",
		"aboutBanner": "",
	}

	got, _ := Section(context.Background(), &fakeSink{}, heroSpec, map[string]any{}, existing, nil)

	if got["legacyField"] != "kept" {
		t.Errorf("legacyField = %v, want kept", got["legacyField"])
	}
}

var historySpec = SectionSpec{
	Key:     "aboutHistory",
	Folder:  "history",
	Records: &Records{Files: []RecordFile{{Field: "image", SharedKey: "historyImages"}}},
}

func TestRecordList_PositionalUploads(t *testing.T) {
	sink := &fakeSink{}
	incoming := []any{
		map[string]any{"year": "1995", "image": ""},
		map[string]any{"year": "2005", "image": ""},
	}
	files := Files{"historyImages": {fh("one.jpg"), fh("two.jpg")}}

	got, warnings := RecordList(context.Background(), sink, historySpec, incoming, nil, files)

	if len(warnings) != 0 {
		t.Fatalf("warnings = %v", warnings)
	}
	for i, rec := range got {
		img := rec.(map[string]any)["image"]
		if img != sink.saved[i] {
			t.Errorf("record %d image = %v, want %v", i, img, sink.saved[i])
		}
	}
}

func TestRecordList_PerIndexKeyDrift(t *testing.T) {
	sink := &fakeSink{}
	incoming := []any{
		map[string]any{"year": "1995"},
		map[string]any{"year": "2005"},
	}
	files := Files{
		"imageFile0": {fh("a.jpg")}, // <field>File<i>
		"image1File": {fh("b.jpg")}, // <field><i>File
	}

	got, _ := RecordList(context.Background(), sink, historySpec, incoming, nil, files)

	if got[0].(map[string]any)["image"] != sink.saved[0] {
		t.Errorf("record 0 did not pick up imageFile0")
	}
	if got[1].(map[string]any)["image"] != sink.saved[1] {
		t.Errorf("record 1 did not pick up image1File")
	}
}

func TestRecordList_KeepsStoredPathsAndFallsBack(t *testing.T) {
	existing := []any{
		map[string]any{"year": "1995", "image": "/uploads/history/old.jpg"},
	}
	incoming := []any{
		map[string]any{"year": "1995 updated", "image": "not-a-path"},
	}

	got, _ := RecordList(context.Background(), &fakeSink{}, historySpec, incoming, existing, nil)

	rec := got[0].(map[string]any)
	if rec["image"] != "/uploads/history/old.jpg" {
		t.Errorf("image = %v, want stored path kept", rec["image"])
	}
	if rec["year"] != "1995 updated" {
		t.Errorf("year = %v, lost the text edit", rec["year"])
	}
}

func TestRecordList_TwoFileFieldsPerRecord(t *testing.T) {
	spec := SectionSpec{
		Key:    "cottonSupplier",
		Folder: "cotton/suppliers",
		Records: &Records{Files: []RecordFile{
			{Field: "cottonSupplierLogo", Folder: "cotton/suppliers/logos"},
			{Field: "cottonSupplierBg", Folder: "cotton/suppliers/bg"},
		}},
	}
	sink := &fakeSink{}
	incoming := []any{
		map[string]any{"cottonSupplierTitle": map[string]any{"en": "ACA"}},
	}
	files := Files{
		"cottonSupplierLogoFile0": {fh("logo.png")},
		"cottonSupplierBgFile0":   {fh("bg.jpg")},
	}

	got, _ := RecordList(context.Background(), sink, spec, incoming, nil, files)

	rec := got[0].(map[string]any)
	if rec["cottonSupplierLogo"] != sink.saved[0] {
		t.Errorf("logo = %v, want %v", rec["cottonSupplierLogo"], sink.saved[0])
	}
	if rec["cottonSupplierBg"] != sink.saved[1] {
		t.Errorf("bg = %v, want %v", rec["cottonSupplierBg"], sink.saved[1])
	}
}

func TestRecordList_IndexKeyPattern(t *testing.T) {
	spec := SectionSpec{
		Key:     "footerSocials",
		Folder:  "footer/socials",
		Records: &Records{Files: []RecordFile{{Field: "iconImage", IndexKey: "iconFile_%d"}}},
	}
	sink := &fakeSink{}
	incoming := []any{
		map[string]any{"link": "https://x.com/cotco"},
		map[string]any{"link": "https://fb.com/cotco", "iconImage": "/uploads/footer/socials/fb.png"},
	}
	files := Files{"iconFile_0": {fh("x.png")}}

	got, _ := RecordList(context.Background(), sink, spec, incoming, nil, files)

	if got[0].(map[string]any)["iconImage"] != sink.saved[0] {
		t.Errorf("record 0 did not pick up iconFile_0")
	}
	if got[1].(map[string]any)["iconImage"] != "/uploads/footer/socials/fb.png" {
		t.Errorf("record 1 stored path lost: %v", got[1])
	}
}

func TestSection_NestedRecordListField(t *testing.T) {
	spec := SectionSpec{
		Key:    "companyLogosSection",
		Folder: "homepage",
		Fields: []Field{
			{
				Name:    "logos",
				Folder:  "partners",
				Records: &Records{Files: []RecordFile{{Field: "url", IndexKey: "partnerLogo%d"}}},
			},
		},
	}
	sink := &fakeSink{}
	incoming := map[string]any{
		"logos": []any{
			map[string]any{"url": "/uploads/partners/old.png"},
			map[string]any{"url": ""},
		},
	}
	files := Files{"partnerLogo1": {fh("new.png")}}

	got, _ := Section(context.Background(), sink, spec, incoming, nil, files)

	logos := got["logos"].([]any)
	if logos[0].(map[string]any)["url"] != "/uploads/partners/old.png" {
		t.Errorf("logo 0 = %v, want stored path kept", logos[0])
	}
	if logos[1].(map[string]any)["url"] != sink.saved[0] {
		t.Errorf("logo 1 = %v, want fresh upload", logos[1])
	}
}

func TestSection_KeyedMapShallowMerge(t *testing.T) {
	spec := SectionSpec{Key: "dynamicTeams", KeyedMap: true}
	existing := map[string]any{
		"leadership": map[string]any{"title": map[string]any{"en": "Leaders"}},
		"sales":      map[string]any{"title": map[string]any{"en": "Sales"}},
	}
	incoming := map[string]any{
		"sales": map[string]any{"title": map[string]any{"en": "Global Sales"}},
	}

	got, _ := Section(context.Background(), &fakeSink{}, spec, incoming, existing, nil)

	if _, ok := got["leadership"]; !ok {
		t.Error("untouched key dropped by shallow merge")
	}
	sales := got["sales"].(map[string]any)["title"].(map[string]any)
	if sales["en"] != "Global Sales" {
		t.Errorf("sales title = %v, want replaced", sales["en"])
	}
}
