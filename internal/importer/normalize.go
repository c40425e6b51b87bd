// Copyright (c) 2026 MangaMirror. All rights reserved.
// Author: duc.lehoang.vn@gmail.com

package importer

import "strings"

// fallbackTitle is stored when an entry carries no usable localized title.
const fallbackTitle = "N/A"

// normalizeManga flattens a wire catalog entry into a storage record.
func normalizeManga(data MangaData) MangaRecord {
	record := MangaRecord{
		ID:              data.ID,
		Title:           pickTitle(data.Attributes.Title),
		Status:          data.Attributes.Status,
		PublicationYear: coerceYear(data.Attributes.Year),
	}

	if description, ok := data.Attributes.Description["en"]; ok && description != "" {
		record.Description = &description
	}

	if rating := data.Attributes.ContentRating; rating != "" {
		record.ContentRating = &rating
	}
	if language := data.Attributes.OriginalLanguage; language != "" {
		record.OriginalLanguage = &language
	}

	record.CoverFilename = pickCoverFilename(data.Relationships)

	return record
}

// pickTitle prefers the English title, falls back to any available locale,
// and finally to the placeholder.
func pickTitle(titles map[string]string) string {
	if title, ok := titles["en"]; ok && title != "" {
		return title
	}
	for _, title := range titles {
		if title != "" {
			return title
		}
	}
	return fallbackTitle
}

// coerceYear accepts the loosely-typed year field and returns a concrete
// value only when it is a plausible number. JSON numbers decode as float64.
func coerceYear(value any) *int {
	switch v := value.(type) {
	case float64:
		year := int(v)
		if year > 0 {
			return &year
		}
	case int:
		if v > 0 {
			year := v
			return &year
		}
	}
	return nil
}

// pickCoverFilename returns the filename of the first expanded cover_art
// relationship, if any.
func pickCoverFilename(relationships []Relationship) *string {
	for _, relationship := range relationships {
		if relationship.Type != "cover_art" || relationship.Attributes == nil {
			continue
		}
		if relationship.Attributes.FileName == "" {
			continue
		}
		filename := relationship.Attributes.FileName
		return &filename
	}
	return nil
}

// normalizeTags extracts an entry's tags, keeping the source id and taxonomy
// group verbatim. Tags without an English name are dropped.
func normalizeTags(tags []TagData) []TagRecord {
	records := make([]TagRecord, 0, len(tags))
	for _, tag := range tags {
		name := strings.TrimSpace(tag.Attributes.Name["en"])
		if name == "" {
			continue
		}
		record := TagRecord{ID: tag.ID, Name: name}
		if group := tag.Attributes.Group; group != "" {
			record.Group = &group
		}
		records = append(records, record)
	}
	return records
}

// normalizeChapter flattens a wire chapter into a storage record.
func normalizeChapter(mangaID string, data ChapterData) ChapterRecord {
	return ChapterRecord{
		ID:            data.ID,
		MangaID:       mangaID,
		ChapterNumber: data.Attributes.Chapter,
		Title:         data.Attributes.Title,
		Language:      data.Attributes.TranslatedLanguage,
		PublishDate:   data.Attributes.PublishAt,
	}
}

// pageImageURL builds the reduced-quality image URL for one page file.
func pageImageURL(baseURL, hash, filename string) string {
	return baseURL + "/data-saver/" + hash + "/" + filename
}
