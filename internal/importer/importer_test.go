// Copyright (c) 2026 MangaMirror. All rights reserved.
// Author: duc.lehoang.vn@gmail.com

package importer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSource serves canned catalog pages keyed by offset.
type fakeSource struct {
	pages        map[int][]MangaData
	feeds        map[string][]ChapterData
	sessions     map[string]*ReaderSession
	listOffsets  []int
	sessionCalls []string
}

func (f *fakeSource) ListManga(_ context.Context, limit, offset int) ([]MangaData, error) {
	f.listOffsets = append(f.listOffsets, offset)
	return f.pages[offset], nil
}

func (f *fakeSource) ChapterFeed(_ context.Context, mangaID string) ([]ChapterData, error) {
	feed, ok := f.feeds[mangaID]
	if !ok {
		return nil, fmt.Errorf("%w: no feed", ErrNoData)
	}
	return feed, nil
}

func (f *fakeSource) ReaderSession(_ context.Context, chapterID string) (*ReaderSession, error) {
	f.sessionCalls = append(f.sessionCalls, chapterID)
	session, ok := f.sessions[chapterID]
	if !ok {
		return nil, fmt.Errorf("%w: no session", ErrNoData)
	}
	return session, nil
}

// fakeStore records writes in memory. Inserts report "new" exactly once per key.
type fakeStore struct {
	mangas   map[string]MangaRecord
	chapters map[string]ChapterRecord
	pages    []PageRecord
	tags     []TagRecord
	tagLinks []string
	uploads  map[string]time.Time
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		mangas:   make(map[string]MangaRecord),
		chapters: make(map[string]ChapterRecord),
		uploads:  make(map[string]time.Time),
	}
}

func (f *fakeStore) InsertManga(_ context.Context, record MangaRecord) (bool, error) {
	if _, exists := f.mangas[record.ID]; exists {
		return false, nil
	}
	f.mangas[record.ID] = record
	return true, nil
}

func (f *fakeStore) UpsertTag(_ context.Context, mangaID string, tag TagRecord) error {
	f.tags = append(f.tags, tag)
	f.tagLinks = append(f.tagLinks, mangaID+":"+tag.ID)
	return nil
}

func (f *fakeStore) InsertChapter(_ context.Context, record ChapterRecord) (bool, error) {
	if _, exists := f.chapters[record.ID]; exists {
		return false, nil
	}
	f.chapters[record.ID] = record
	return true, nil
}

func (f *fakeStore) InsertPage(_ context.Context, record PageRecord) (bool, error) {
	f.pages = append(f.pages, record)
	return true, nil
}

func (f *fakeStore) MarkChapterUpload(_ context.Context, mangaID string, uploadedAt time.Time) error {
	if current, ok := f.uploads[mangaID]; !ok || uploadedAt.After(current) {
		f.uploads[mangaID] = uploadedAt
	}
	return nil
}

// recordingCheckpoint captures Save/Clear calls.
type recordingCheckpoint struct {
	start   int
	saved   []int
	cleared bool
}

func (c *recordingCheckpoint) Load(context.Context) (int, error) { return c.start, nil }
func (c *recordingCheckpoint) Save(_ context.Context, offset int) error {
	c.saved = append(c.saved, offset)
	return nil
}
func (c *recordingCheckpoint) Clear(context.Context) error {
	c.cleared = true
	return nil
}

func englishChapter(id, number string, published time.Time) ChapterData {
	return ChapterData{
		ID: id,
		Attributes: ChapterAttributes{
			Chapter:            &number,
			TranslatedLanguage: "en",
			PublishAt:          &published,
		},
	}
}

func testImporter(source Source, store Store, checkpoint Checkpoint, pageLimit int) *Importer {
	return New(source, store, checkpoint, slog.Default(), Config{PageLimit: pageLimit})
}

/*
TestRun_WalksUntilEmptyPage verifies pagination: the offset advances by the
page size every page and the run ends at the first empty page.
*/
func TestRun_WalksUntilEmptyPage(t *testing.T) {
	source := &fakeSource{
		pages: map[int][]MangaData{
			0: {{ID: "m1", Attributes: MangaAttributes{Title: map[string]string{"en": "A"}}}},
			2: {{ID: "m2", Attributes: MangaAttributes{Title: map[string]string{"en": "B"}}}},
		},
		feeds: map[string][]ChapterData{"m1": {}, "m2": {}},
	}
	store := newFakeStore()
	checkpoint := &recordingCheckpoint{}

	stats, err := testImporter(source, store, checkpoint, 2).Run(context.Background())
	require.NoError(t, err)

	// Pages at 0 and 2 had data; 4 was empty and ended the walk.
	assert.Equal(t, []int{0, 2, 4}, source.listOffsets)
	assert.Equal(t, 2, stats.PagesWalked)
	assert.Equal(t, 2, stats.MangaNew)
	assert.True(t, checkpoint.cleared)
	assert.Equal(t, []int{0, 2, 4}, checkpoint.saved)
}

/*
TestRun_ResumesFromCheckpoint starts the walk at the saved offset.
*/
func TestRun_ResumesFromCheckpoint(t *testing.T) {
	source := &fakeSource{pages: map[int][]MangaData{}}
	checkpoint := &recordingCheckpoint{start: 42}

	_, err := testImporter(source, newFakeStore(), checkpoint, 21).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []int{42}, source.listOffsets)
}

/*
TestRun_NewChapterFetchesPages verifies that only newly inserted chapters
trigger a page fetch, and that page numbers are assigned 1..N in list order.
*/
func TestRun_NewChapterFetchesPages(t *testing.T) {
	published := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	source := &fakeSource{
		pages: map[int][]MangaData{
			0: {{ID: "m1", Attributes: MangaAttributes{Title: map[string]string{"en": "A"}}}},
		},
		feeds: map[string][]ChapterData{
			"m1": {englishChapter("c1", "1", published)},
		},
		sessions: map[string]*ReaderSession{
			"c1": {
				BaseURL: "https://img.example.org",
				Chapter: ReaderSessionChapter{Hash: "abc", DataSaver: []string{"p1.jpg", "p2.jpg", "p3.jpg"}},
			},
		},
	}
	store := newFakeStore()
	// Pre-existing chapter: must NOT trigger a session fetch.
	store.chapters["c0"] = ChapterRecord{ID: "c0"}
	source.feeds["m1"] = append(source.feeds["m1"], englishChapter("c0", "0", published))

	stats, err := testImporter(source, store, &recordingCheckpoint{}, 21).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"c1"}, source.sessionCalls)
	assert.Equal(t, 1, stats.ChaptersNew)
	assert.Equal(t, 3, stats.PageURLsNew)

	require.Len(t, store.pages, 3)
	for i, page := range store.pages {
		assert.Equal(t, "c1", page.ChapterID)
		assert.Equal(t, i+1, page.PageNumber)
	}
	assert.Equal(t, "https://img.example.org/data-saver/abc/p1.jpg", store.pages[0].ImageURL)

	// The manga's activity timestamp advanced to the chapter's publish date.
	assert.True(t, store.uploads["m1"].Equal(published))
}

/*
TestRun_SkipsNonEnglishChapters drops feed rows in other languages even if
the upstream leaks them into an English-filtered feed.
*/
func TestRun_SkipsNonEnglishChapters(t *testing.T) {
	number := "1"
	source := &fakeSource{
		pages: map[int][]MangaData{
			0: {{ID: "m1", Attributes: MangaAttributes{Title: map[string]string{"en": "A"}}}},
		},
		feeds: map[string][]ChapterData{
			"m1": {{
				ID:         "c-fr",
				Attributes: ChapterAttributes{Chapter: &number, TranslatedLanguage: "fr"},
			}},
		},
	}
	store := newFakeStore()

	stats, err := testImporter(source, store, &recordingCheckpoint{}, 21).Run(context.Background())
	require.NoError(t, err)

	assert.Zero(t, stats.ChaptersNew)
	assert.Empty(t, store.chapters)
	assert.Empty(t, source.sessionCalls)
}

/*
TestRun_EntryFailureDoesNotAbort verifies fault isolation: a failing entry is
counted and skipped while the rest of the page imports normally.
*/
func TestRun_EntryFailureDoesNotAbort(t *testing.T) {
	source := &fakeSource{
		pages: map[int][]MangaData{
			0: {
				{ID: "bad", Attributes: MangaAttributes{Title: map[string]string{"en": "Bad"}}},
				{ID: "good", Attributes: MangaAttributes{Title: map[string]string{"en": "Good"}}},
			},
		},
		feeds: map[string][]ChapterData{"good": {}},
	}

	store := newFakeStore()
	failing := &failOnceStore{fakeStore: store, failID: "bad"}

	stats, err := testImporter(source, failing, &recordingCheckpoint{}, 21).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, stats.EntriesError)
	assert.Equal(t, 1, stats.MangaNew)
	assert.Contains(t, store.mangas, "good")
	assert.NotContains(t, store.mangas, "bad")
}

// failOnceStore fails InsertManga for a single ID.
type failOnceStore struct {
	*fakeStore
	failID string
}

func (f *failOnceStore) InsertManga(ctx context.Context, record MangaRecord) (bool, error) {
	if record.ID == f.failID {
		return false, errors.New("storage down")
	}
	return f.fakeStore.InsertManga(ctx, record)
}

/*
TestRun_MissingFeedSkipsEntry stores the entry itself even when its chapter
feed is unavailable.
*/
func TestRun_MissingFeedSkipsEntry(t *testing.T) {
	source := &fakeSource{
		pages: map[int][]MangaData{
			0: {{ID: "m1", Attributes: MangaAttributes{Title: map[string]string{"en": "A"}}}},
		},
		// no feed registered for m1 -> ErrNoData
	}
	store := newFakeStore()

	stats, err := testImporter(source, store, &recordingCheckpoint{}, 21).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, stats.MangaNew)
	assert.Zero(t, stats.EntriesError)
	assert.Contains(t, store.mangas, "m1")
}

/*
TestRun_TagsKeepSourceIdentity verifies that tags reach the store with the
source's tag id and group intact, deduplicated by id rather than name, and
that tags without an English name are dropped.
*/
func TestRun_TagsKeepSourceIdentity(t *testing.T) {
	source := &fakeSource{
		pages: map[int][]MangaData{
			0: {{
				ID: "m1",
				Attributes: MangaAttributes{
					Title: map[string]string{"en": "A"},
					Tags: []TagData{
						{
							ID: "tag-genre-action",
							Attributes: TagAttributes{
								Name:  map[string]string{"en": "Action"},
								Group: "genre",
							},
						},
						{
							ID: "tag-theme-school",
							Attributes: TagAttributes{
								Name: map[string]string{"en": "School Life"},
							},
						},
						{
							ID:         "tag-ja-only",
							Attributes: TagAttributes{Name: map[string]string{"ja": "アクション"}},
						},
					},
				},
			}},
		},
		feeds: map[string][]ChapterData{"m1": {}},
	}
	store := newFakeStore()

	_, err := testImporter(source, store, &recordingCheckpoint{}, 21).Run(context.Background())
	require.NoError(t, err)

	require.Len(t, store.tags, 2)

	assert.Equal(t, "tag-genre-action", store.tags[0].ID)
	assert.Equal(t, "Action", store.tags[0].Name)
	require.NotNil(t, store.tags[0].Group)
	assert.Equal(t, "genre", *store.tags[0].Group)

	assert.Equal(t, "tag-theme-school", store.tags[1].ID)
	assert.Nil(t, store.tags[1].Group)

	// Links are keyed by the source tag id, not the display name.
	assert.Equal(t, []string{"m1:tag-genre-action", "m1:tag-theme-school"}, store.tagLinks)
}

/*
TestRun_WarnsOnDiscardedFeedRows checks that silently dropped upstream data
leaves a trace in the logs: a non-English chapter leaking into the feed and a
reader session with an empty page list both warn.
*/
func TestRun_WarnsOnDiscardedFeedRows(t *testing.T) {
	published := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	number := "1"

	source := &fakeSource{
		pages: map[int][]MangaData{
			0: {{ID: "m1", Attributes: MangaAttributes{Title: map[string]string{"en": "A"}}}},
		},
		feeds: map[string][]ChapterData{
			"m1": {
				{
					ID:         "c-fr",
					Attributes: ChapterAttributes{Chapter: &number, TranslatedLanguage: "fr"},
				},
				englishChapter("c-empty", "2", published),
			},
		},
		sessions: map[string]*ReaderSession{
			"c-empty": {
				BaseURL: "https://img.example.org",
				Chapter: ReaderSessionChapter{Hash: "abc"},
			},
		},
	}
	store := newFakeStore()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	imp := New(source, store, &recordingCheckpoint{}, logger, Config{PageLimit: 21})
	_, err := imp.Run(context.Background())
	require.NoError(t, err)

	logged := buf.String()
	assert.Contains(t, logged, "non-english chapter in feed")
	assert.Contains(t, logged, "c-fr")
	assert.Contains(t, logged, "reader session returned no pages")
	assert.Contains(t, logged, "c-empty")
}

/*
TestRun_WarnsOnUnknownStatus flags publication statuses outside the known
vocabulary while still storing the row verbatim.
*/
func TestRun_WarnsOnUnknownStatus(t *testing.T) {
	source := &fakeSource{
		pages: map[int][]MangaData{
			0: {{
				ID: "m1",
				Attributes: MangaAttributes{
					Title:  map[string]string{"en": "A"},
					Status: "abandoned",
				},
			}},
		},
		feeds: map[string][]ChapterData{"m1": {}},
	}
	store := newFakeStore()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	imp := New(source, store, &recordingCheckpoint{}, logger, Config{PageLimit: 21})
	_, err := imp.Run(context.Background())
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "unknown publication status")
	assert.Equal(t, "abandoned", store.mangas["m1"].Status)
}
