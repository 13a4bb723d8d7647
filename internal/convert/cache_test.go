package convert

import (
	"testing"

	"doccomp/internal/render"
	"doccomp/internal/symbol"
)

func TestDiskCacheRoundTrip(t *testing.T) {
	cache, err := OpenDiskCache(t.TempDir())
	if err != nil {
		t.Fatalf("OpenDiskCache: %v", err)
	}
	page := &render.Page{
		Identifier: "doc://org.example.kit/documentation/Kit/Mode",
		Kind:       "symbol",
		Title:      "Mode",
		Languages:  []string{"data"},
		Sections: []*render.VariantCollection[render.Section]{
			render.NewVariantCollection[render.Section](&render.PossibleValuesSection{
				Title:  "Possible Values",
				Values: []render.PossibleValue{{Value: "on"}, {Value: "off"}},
			}),
		},
		References: []string{},
	}
	payload, err := pageToPayload(page)
	if err != nil {
		t.Fatalf("pageToPayload: %v", err)
	}

	var key Digest
	key[0] = 0xab
	if err := cache.Put(key, payload); err != nil {
		t.Fatalf("Put: %v", err)
	}

	var got DiskPayload
	ok, err := cache.Get(key, &got)
	if err != nil || !ok {
		t.Fatalf("Get = %v, %v", ok, err)
	}
	back, err := payloadToPage(&got)
	if err != nil {
		t.Fatalf("payloadToPage: %v", err)
	}
	section, ok := back.Section(render.KindPossibleValues).Default.(*render.PossibleValuesSection)
	if !ok {
		t.Fatalf("section type = %T", back.Section(render.KindPossibleValues).Default)
	}
	if section.Title != "Possible Values" || len(section.Values) != 2 || section.Values[1].Value != "off" {
		t.Fatalf("section = %+v", section)
	}
}

func TestDiskCacheMissAndDrop(t *testing.T) {
	cache, err := OpenDiskCache(t.TempDir())
	if err != nil {
		t.Fatalf("OpenDiskCache: %v", err)
	}
	var key Digest
	var out DiskPayload
	if ok, err := cache.Get(key, &out); ok || err != nil {
		t.Fatalf("empty cache Get = %v, %v", ok, err)
	}

	if err := cache.Put(key, &DiskPayload{Schema: diskCacheSchemaVersion + 1, Title: "stale"}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if ok, _ := cache.Get(key, &out); ok {
		t.Fatalf("payload with another schema must miss")
	}

	if err := cache.Put(key, &DiskPayload{Schema: diskCacheSchemaVersion}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := cache.DropAll(); err != nil {
		t.Fatalf("DropAll: %v", err)
	}
	if ok, _ := cache.Get(key, &out); ok {
		t.Fatalf("Get after DropAll hit")
	}
}

func TestFingerprintTracksContent(t *testing.T) {
	sym := &symbol.Symbol{PreciseIdentifier: "s:W", Title: "Widget"}
	a, err := Fingerprint(sym, "doc://b/documentation/K/Widget", []byte("salt"))
	if err != nil {
		t.Fatalf("Fingerprint: %v", err)
	}
	b, _ := Fingerprint(sym, "doc://b/documentation/K/Widget", []byte("salt"))
	if a != b {
		t.Fatalf("fingerprint is not stable")
	}
	if c, _ := Fingerprint(sym, "doc://b/documentation/K/Widget", []byte("other")); c == a {
		t.Fatalf("link salt ignored")
	}
	sym.Title = "Gadget"
	if c, _ := Fingerprint(sym, "doc://b/documentation/K/Widget", []byte("salt")); c == a {
		t.Fatalf("symbol change ignored")
	}
}
