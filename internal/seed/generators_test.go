package seed

import (
	"strings"
	"testing"
	"time"

	"fameboard/internal/models"
)

func TestBuildPost_TimestampsAndMarkers(t *testing.T) {
	opts := Options{DryRun: true, MaxDays: 30}
	f := NewFactory(nil, opts)
	author := &models.User{ID: 1}

	p := f.BuildPost(author, "science", PostKindClean)
	if p.Content == "" {
		t.Fatal("expected generated content")
	}
	if time.Since(p.CreatedAt) > (time.Duration(opts.MaxDays)+1)*24*time.Hour {
		t.Fatalf("created_at too old: %v", p.CreatedAt)
	}

	p2 := f.BuildPost(author, "science", PostKindMisinformation)
	found := false
	for _, marker := range falsehoodMarkers {
		if strings.Contains(p2.Content, marker) {
			found = true
			break
		}
	}
	if !found {
		t.Fatalf("misinformation post missing a falsehood marker: %q", p2.Content)
	}

	p3 := f.BuildPost(author, "finance", PostKindSpam)
	found = false
	for _, marker := range spamMarkers {
		if strings.Contains(p3.Content, marker) {
			found = true
			break
		}
	}
	if !found {
		t.Fatalf("spam post missing a spam marker: %q", p3.Content)
	}
}

func TestKeywordFor_UnknownAreaFallsBack(t *testing.T) {
	f := NewFactory(nil, Options{DryRun: true})
	got := keywordFor("gardening", f.rand)
	if got != "gardening" {
		t.Fatalf("expected fallback to area name, got %q", got)
	}
}

func TestComputeCounts_Default(t *testing.T) {
	clean, misinfo, spam := computeCounts(10, defaultDistribution)
	if clean+misinfo+spam != 10 {
		t.Fatalf("sum mismatch: got %d", clean+misinfo+spam)
	}
	if clean != 9 || misinfo != 1 || spam != 0 {
		t.Fatalf("unexpected default counts: clean=%d, misinfo=%d, spam=%d", clean, misinfo, spam)
	}
}

func TestComputeCounts_Hostile(t *testing.T) {
	d, ok := Distributions["hostile"]
	if !ok {
		t.Fatalf("hostile distribution not found")
	}
	clean, misinfo, spam := computeCounts(10, d)
	if clean+misinfo+spam != 10 {
		t.Fatalf("sum mismatch: got %d", clean+misinfo+spam)
	}
	if clean != 4 || misinfo != 4 || spam != 2 {
		t.Fatalf("unexpected hostile counts: clean=%d, misinfo=%d, spam=%d", clean, misinfo, spam)
	}
}
