package media

import (
	"errors"
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 10, 0, 0, 0, time.UTC)
}

func TestNewFilterSelectors(t *testing.T) {
	tests := []struct {
		selector string
		want     []Kind
		wantErr  bool
	}{
		{"photo", []Kind{KindPhoto}, false},
		{"video", []Kind{KindVideo, KindAnimation}, false},
		{"document", []Kind{KindDocument}, false},
		{"both", []Kind{KindPhoto, KindVideo, KindAnimation}, false},
		{"all", []Kind{KindPhoto, KindVideo, KindAnimation, KindDocument, KindAudio, KindVoice, KindSticker}, false},
		{"audio", nil, true},
		{"", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.selector, func(t *testing.T) {
			f, err := NewFilter(tt.selector, "", time.Time{}, time.Time{})
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewFilter(%q) error = %v, wantErr %v", tt.selector, err, tt.wantErr)
			}
			if err != nil {
				var fe *FilterError
				if !errors.As(err, &fe) {
					t.Errorf("error type = %T, want *FilterError", err)
				}
				return
			}
			if len(f.Kinds) != len(tt.want) {
				t.Fatalf("got %d kinds, want %d", len(f.Kinds), len(tt.want))
			}
			for _, k := range tt.want {
				if !f.Kinds[k] {
					t.Errorf("kind %s missing from filter", k)
				}
			}
		})
	}
}

func TestNewFilterRejectsBadConfig(t *testing.T) {
	t.Run("inverted range", func(t *testing.T) {
		_, err := NewFilter("photo", "", date(2024, 3, 1), date(2024, 1, 1))
		var fe *FilterError
		if !errors.As(err, &fe) {
			t.Fatalf("error = %v, want *FilterError", err)
		}
	})
	t.Run("empty extension token", func(t *testing.T) {
		_, err := NewFilter("document", "pdf,,zip", time.Time{}, time.Time{})
		var fe *FilterError
		if !errors.As(err, &fe) {
			t.Fatalf("error = %v, want *FilterError", err)
		}
	})
}

func TestFilterDateRange(t *testing.T) {
	f, err := NewFilter("photo", "", date(2024, 2, 1), time.Time{})
	if err != nil {
		t.Fatal(err)
	}

	jan := &Item{Kind: KindPhoto, Date: date(2024, 1, 15)}
	feb := &Item{Kind: KindPhoto, Date: date(2024, 2, 15)}
	mar := &Item{Kind: KindPhoto, Date: date(2024, 3, 1)}

	if f.Allows(jan) {
		t.Error("January item passed a start=2024-02-01 filter")
	}
	if !f.Allows(feb) || !f.Allows(mar) {
		t.Error("February/March items should pass a start=2024-02-01 filter")
	}
}

func TestFilterRangeInclusive(t *testing.T) {
	start := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 2, 29, 23, 59, 59, 0, time.UTC)
	f, err := NewFilter("photo", "", start, end)
	if err != nil {
		t.Fatal(err)
	}

	if !f.InRange(start) {
		t.Error("start bound must be inclusive")
	}
	if !f.InRange(end) {
		t.Error("end bound must be inclusive")
	}
	if f.InRange(end.Add(time.Second)) {
		t.Error("instant past end must be excluded")
	}
}

func TestFilterExtensions(t *testing.T) {
	f, err := NewFilter("document", ".PDF, docx", time.Time{}, time.Time{})
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		item *Item
		want bool
	}{
		{"pdf passes", &Item{Kind: KindDocument, FileName: "report.pdf", Date: noon}, true},
		{"case insensitive", &Item{Kind: KindDocument, FileName: "REPORT.PDF", Date: noon}, true},
		{"docx passes", &Item{Kind: KindDocument, FileName: "notes.docx", Date: noon}, true},
		{"zip rejected", &Item{Kind: KindDocument, FileName: "archive.zip", Date: noon}, false},
		{"no filename rejected", &Item{Kind: KindDocument, Date: noon}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f.Allows(tt.item); got != tt.want {
				t.Errorf("Allows() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFilterExtensionsIgnoredForNonDocuments(t *testing.T) {
	f, err := NewFilter("all", "pdf", time.Time{}, time.Time{})
	if err != nil {
		t.Fatal(err)
	}
	photo := &Item{Kind: KindPhoto, Date: noon}
	if !f.Allows(photo) {
		t.Error("extension list must not apply to photos")
	}
}

func TestFilterSelectorKindCoverage(t *testing.T) {
	gif := &Item{Kind: KindAnimation, MimeType: "video/mp4", Date: noon}
	voice := &Item{Kind: KindVoice, Date: noon}
	sticker := &Item{Kind: KindSticker, Date: noon}
	audio := &Item{Kind: KindAudio, Date: noon}

	tests := []struct {
		selector string
		item     *Item
		want     bool
	}{
		{"video", gif, true},
		{"both", gif, true},
		{"all", gif, true},
		{"photo", gif, false},
		{"document", gif, false},
		{"all", voice, true},
		{"all", sticker, true},
		{"all", audio, true},
		{"video", audio, false},
		{"both", voice, false},
	}
	for _, tt := range tests {
		t.Run(tt.selector+"/"+string(tt.item.Kind), func(t *testing.T) {
			f, err := NewFilter(tt.selector, "", time.Time{}, time.Time{})
			if err != nil {
				t.Fatal(err)
			}
			if got := f.Allows(tt.item); got != tt.want {
				t.Errorf("Allows(%s under %s) = %v, want %v", tt.item.Kind, tt.selector, got, tt.want)
			}
		})
	}
}

func TestFilterNeverAllowsNone(t *testing.T) {
	f, err := NewFilter("all", "", time.Time{}, time.Time{})
	if err != nil {
		t.Fatal(err)
	}
	if f.Allows(&Item{Kind: KindNone, Date: noon}) {
		t.Error("kind none must never be enqueued")
	}
	if f.Allows(&Item{Kind: KindOther, Date: noon}) {
		t.Error("kind other has no file to transfer and must never be enqueued")
	}
	if f.Allows(nil) {
		t.Error("nil item must never be enqueued")
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		endOfDay bool
		want     time.Time
		wantErr  bool
	}{
		{"date only", "2024-03-15", false, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), false},
		{"date only end expands", "2024-03-15", true, time.Date(2024, 3, 15, 23, 59, 59, 0, time.UTC), false},
		{"datetime", "2024-03-15 08:30:00", false, time.Date(2024, 3, 15, 8, 30, 0, 0, time.UTC), false},
		{"datetime end not expanded", "2024-03-15 08:30:00", true, time.Date(2024, 3, 15, 8, 30, 0, 0, time.UTC), false},
		{"empty is unbounded", "", false, time.Time{}, false},
		{"garbage", "15/03/2024", false, time.Time{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.in, tt.endOfDay)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDate(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParseDate(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
