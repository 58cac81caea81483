// Package merge reconciles an incoming multipart page-section payload with
// the stored section.
//
// A section arrives as a coerced JSON map plus zero or more file uploads.
// Each page declares its sections as SectionSpec tables; the engine walks the
// spec field by field and applies the field's policy:
//
//   - text and bilingual fields replace the stored value when present in the
//     payload (an explicit empty value clears),
//   - single-file fields prefer a fresh upload, then the payload value
//     (empty string clears), then the stored value,
//   - overwrite galleries are replaced wholesale by uploads,
//   - append galleries only ever grow,
//   - record lists resolve one upload per index, accepting the historical
//     key namings,
//   - keyed maps shallow-merge the payload over the stored map.
//
// Failed uploads never fail the merge: the field keeps its previous value
// and a warning is recorded for the response.
package merge

import (
	"context"
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/Foragefoxoffice/Cotco-backend/internal/app/system/coerce"
)

// Files is the upload set of one request, keyed by form field name. It is
// decoupled from net/http so the engine is testable without an HTTP harness.
type Files map[string][]*multipart.FileHeader

// First returns the first file under key, or nil.
func (f Files) First(key string) *multipart.FileHeader {
	if fhs := f[key]; len(fhs) > 0 {
		return fhs[0]
	}
	return nil
}

// Sink persists one upload and returns its public URL. *uploads.Store is the
// production implementation.
type Sink interface {
	Save(ctx context.Context, fh *multipart.FileHeader, folder string) (string, error)
}

// Kind selects the merge policy for a field.
type Kind int

const (
	// Text is a plain scalar replaced when present in the payload.
	Text Kind = iota
	// Lang is a bilingual {en, vi} value, normalized and replaced when
	// present.
	Lang
	// Raw is a free-form value (list, nested object) replaced when present.
	Raw
	// File is a single stored URL fed by one upload key.
	File
	// GalleryOverwrite is a URL list replaced wholesale by uploads.
	GalleryOverwrite
	// GalleryAppend is a URL list that uploads and payload edits may grow
	// but never shrink.
	GalleryAppend
)

// Field is one entry of a section's merge table.
type Field struct {
	Name string
	Kind Kind

	// UploadKey is the form key carrying this field's upload(s). Defaults
	// to Name+"File" for File fields and Name+"Files" for galleries.
	UploadKey string

	// Folder overrides the section's storage folder for this field.
	Folder string

	// Records, when non-nil, marks the field as a nested list of records
	// (Kind is ignored); the list merges like a Records section.
	Records *Records

	// MaxBytes, when non-zero, caps image uploads for this field; the
	// handler rejects larger files with a 400 before merging.
	MaxBytes int64
}

// RecordFile binds one file-bearing field of a record to its upload keys.
type RecordFile struct {
	// Field is the record field that holds the stored URL.
	Field string

	// IndexKey, when set, is an fmt pattern with one %d producing the
	// per-index upload key (e.g. "iconFile_%d"). When empty, the
	// historical namings <Field>File<i> and <Field><i>File are tried.
	IndexKey string

	// SharedKey, when set, is a plural upload key whose files are consumed
	// in record order (the i-th file belongs to the i-th record).
	SharedKey string

	// Folder overrides the section's storage folder for this field.
	Folder string
}

// Records describes a list of records (e.g. company history milestones),
// where each record may carry positionally matched uploads.
type Records struct {
	Files []RecordFile
}

// SectionSpec declares how one section of a page merges.
type SectionSpec struct {
	// Key is the section's name in both the form payload and the stored
	// document.
	Key string

	// Folder is the storage folder for this section's uploads.
	Folder string

	Fields []Field

	// Records, when non-nil, marks the section as a list of records; list
	// sections merge through RecordList instead of Section.
	Records *Records

	// KeyedMap marks the section as a map of named records merged
	// shallowly (payload keys replace stored keys; absent keys survive).
	KeyedMap bool

	// Lang marks the section as a single bilingual {en, vi} value rather
	// than a field map (terms & conditions content).
	Lang bool

	// BodyKey is the form key carrying this section's payload when it
	// differs from Key (seoMeta is posted as <page>SeoMeta).
	BodyKey string
}

// PayloadKey returns the form key carrying the section's payload.
func (s SectionSpec) PayloadKey() string {
	if s.BodyKey != "" {
		return s.BodyKey
	}
	return s.Key
}

// FormKey returns the effective upload key for the field.
func (f Field) FormKey() string {
	if f.UploadKey != "" {
		return f.UploadKey
	}
	switch f.Kind {
	case GalleryOverwrite, GalleryAppend:
		return f.Name + "Files"
	default:
		return f.Name + "File"
	}
}

func (f Field) folder(section SectionSpec) string {
	if f.Folder != "" {
		return f.Folder
	}
	return section.Folder
}

// Section merges one section and returns the merged value plus any warnings.
// incoming is the coerced payload map for the section, which the caller
// defaults to existing when the payload is absent or malformed, so a bad
// payload degrades to a no-op.
func Section(ctx context.Context, sink Sink, spec SectionSpec, incoming, existing map[string]any, files Files) (map[string]any, []string) {
	if incoming == nil {
		incoming = map[string]any{}
	}
	if existing == nil {
		existing = map[string]any{}
	}

	var warnings []string
	warn := func(format string, args ...any) {
		warnings = append(warnings, fmt.Sprintf(format, args...))
	}

	if spec.KeyedMap {
		return mergeKeyedMap(incoming, existing), nil
	}
	if spec.Lang {
		return coerce.Lang(incoming), nil
	}

	merged := make(map[string]any, len(spec.Fields))

	for _, f := range spec.Fields {
		inVal, inPresent := incoming[f.Name]
		exVal := existing[f.Name]

		if f.Records != nil {
			in := toList(inVal)
			if !inPresent {
				in = toList(exVal)
			}
			merged[f.Name] = mergeRecords(ctx, sink, f.Records, f.folder(spec), spec.Key+"."+f.Name, in, toList(exVal), files, warn)
			continue
		}

		switch f.Kind {
		case Text:
			if inPresent {
				merged[f.Name] = inVal
			} else if exVal != nil {
				merged[f.Name] = exVal
			} else {
				merged[f.Name] = ""
			}

		case Lang:
			if inPresent {
				merged[f.Name] = coerce.Lang(inVal)
			} else {
				merged[f.Name] = coerce.Lang(exVal)
			}

		case Raw:
			if inPresent {
				merged[f.Name] = inVal
			} else if exVal != nil {
				merged[f.Name] = exVal
			}

		case File:
			merged[f.Name] = mergeFile(ctx, sink, f, spec, inVal, inPresent, exVal, files, warn)

		case GalleryOverwrite:
			merged[f.Name] = mergeOverwriteGallery(ctx, sink, f, spec, inVal, inPresent, exVal, files, warn)

		case GalleryAppend:
			merged[f.Name] = mergeAppendGallery(ctx, sink, f, spec, inVal, exVal, files, warn)
		}
	}

	// Preserve unknown stored keys so older documents survive schema drift.
	for k, v := range existing {
		if _, ok := merged[k]; !ok {
			merged[k] = v
		}
	}

	return merged, warnings
}

// RecordList merges a list-of-records section and returns the merged list
// plus warnings. incoming is the coerced payload list (callers default it to
// the existing list).
func RecordList(ctx context.Context, sink Sink, spec SectionSpec, incoming, existing []any, files Files) ([]any, []string) {
	var warnings []string
	warn := func(format string, args ...any) {
		warnings = append(warnings, fmt.Sprintf(format, args...))
	}
	return mergeRecords(ctx, sink, spec.Records, spec.Folder, spec.Key, incoming, existing, files, warn), warnings
}

func mergeFile(ctx context.Context, sink Sink, f Field, spec SectionSpec, inVal any, inPresent bool, exVal any, files Files, warn func(string, ...any)) string {
	if fh := files.First(f.FormKey()); fh != nil {
		url, err := sink.Save(ctx, fh, f.folder(spec))
		if err == nil {
			return url
		}
		warn("upload failed for %s, keeping previous value", f.FormKey())
	}
	if inPresent {
		// "" clears the stored reference; any other value must already be a
		// stored upload path. Data URIs and other junk keep the old value.
		if s, ok := inVal.(string); ok && (s == "" || strings.HasPrefix(s, "/uploads/")) {
			return s
		}
	}
	if s, ok := exVal.(string); ok {
		return s
	}
	return ""
}

func mergeOverwriteGallery(ctx context.Context, sink Sink, f Field, spec SectionSpec, inVal any, inPresent bool, exVal any, files Files, warn func(string, ...any)) []any {
	if fhs := files[f.FormKey()]; len(fhs) > 0 {
		urls := make([]any, 0, len(fhs))
		for _, fh := range fhs {
			url, err := sink.Save(ctx, fh, f.folder(spec))
			if err != nil {
				warn("upload failed for %s (%s), skipping it", f.FormKey(), fh.Filename)
				continue
			}
			urls = append(urls, url)
		}
		if len(urls) > 0 {
			return urls
		}
		warn("all uploads failed for %s, keeping previous gallery", f.FormKey())
	}
	if inPresent {
		// An explicit list replaces the gallery outright; [] empties it.
		if in, ok := inVal.([]any); ok {
			return in
		}
	}
	return toList(exVal)
}

func mergeAppendGallery(ctx context.Context, sink Sink, f Field, spec SectionSpec, inVal, exVal any, files Files, warn func(string, ...any)) []any {
	existing := toList(exVal)
	incoming := toList(inVal)

	// The gallery never shrinks: an edited list shorter than what is stored
	// is treated as stale and the stored list kept.
	base := existing
	if inVal != nil && len(incoming) >= len(existing) {
		base = incoming
	}

	out := make([]any, len(base))
	copy(out, base)

	for _, fh := range files[f.FormKey()] {
		url, err := sink.Save(ctx, fh, f.folder(spec))
		if err != nil {
			warn("upload failed for %s (%s), skipping it", f.FormKey(), fh.Filename)
			continue
		}
		out = append(out, url)
	}
	return out
}

// recordUpload resolves the upload for record index i, honoring every key
// naming the admin UI has shipped with: an explicit IndexKey pattern,
// <field>File<i>, <field><i>File, and a shared plural key consumed
// positionally.
func recordUpload(rf RecordFile, i int, files Files) *multipart.FileHeader {
	if rf.IndexKey != "" {
		return files.First(fmt.Sprintf(rf.IndexKey, i))
	}
	if fh := files.First(fmt.Sprintf("%sFile%d", rf.Field, i)); fh != nil {
		return fh
	}
	if fh := files.First(fmt.Sprintf("%s%dFile", rf.Field, i)); fh != nil {
		return fh
	}
	if rf.SharedKey != "" {
		if fhs := files[rf.SharedKey]; i < len(fhs) {
			return fhs[i]
		}
	}
	return nil
}

func mergeRecords(ctx context.Context, sink Sink, recs *Records, folder, label string, incoming, existing []any, files Files, warn func(string, ...any)) []any {
	out := make([]any, 0, len(incoming))

	for i, item := range incoming {
		rec, ok := item.(map[string]any)
		if !ok {
			out = append(out, item)
			continue
		}
		merged := make(map[string]any, len(rec))
		for k, v := range rec {
			merged[k] = v
		}

		for _, rf := range recs.Files {
			dir := rf.Folder
			if dir == "" {
				dir = folder
			}
			if fh := recordUpload(rf, i, files); fh != nil {
				url, err := sink.Save(ctx, fh, dir)
				if err != nil {
					warn("upload failed for %s[%d] (%s), keeping previous value", label, i, fh.Filename)
					merged[rf.Field] = previousRecordFile(rec, existing, i, rf.Field)
				} else {
					merged[rf.Field] = url
				}
			} else {
				merged[rf.Field] = previousRecordFile(rec, existing, i, rf.Field)
			}
		}

		out = append(out, merged)
	}

	return out
}

// previousRecordFile keeps a record's stored URL: the payload value when it
// is a stored upload path, else the same index of the stored list.
func previousRecordFile(rec map[string]any, existing []any, i int, field string) string {
	if s, ok := rec[field].(string); ok && strings.HasPrefix(s, "/uploads/") {
		return s
	}
	if i < len(existing) {
		if prev, ok := existing[i].(map[string]any); ok {
			if s, ok := prev[field].(string); ok {
				return s
			}
		}
	}
	return ""
}

func mergeKeyedMap(incoming, existing map[string]any) map[string]any {
	out := make(map[string]any, len(existing)+len(incoming))
	for k, v := range existing {
		out[k] = v
	}
	for k, v := range incoming {
		out[k] = v
	}
	return out
}

func toList(v any) []any {
	if l, ok := v.([]any); ok {
		return l
	}
	return nil
}
