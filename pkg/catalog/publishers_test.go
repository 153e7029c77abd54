package catalog

import "testing"

func TestPublishersDirectoryLoads(t *testing.T) {
	pubs := Publishers()
	if len(pubs) == 0 {
		t.Fatal("embedded publisher directory is empty")
	}
	for _, p := range pubs {
		if p.ID == "" || p.Label == "" {
			t.Errorf("incomplete publisher entry: %+v", p)
		}
	}
}

func TestLookupPublisher(t *testing.T) {
	tests := []struct {
		query  string
		wantID string
		found  bool
	}{
		{"environment-agency", "environment-agency", true},
		{"Environment-Agency", "environment-agency", true},
		{"environment agency", "environment-agency", true},
		{"ordnance", "ordnance-survey", true},
		{"", "", false},
		{"nonexistent body", "", false},
	}
	for _, tt := range tests {
		p, ok := LookupPublisher(tt.query)
		if ok != tt.found {
			t.Errorf("LookupPublisher(%q) found = %v, want %v", tt.query, ok, tt.found)
			continue
		}
		if ok && p.ID != tt.wantID {
			t.Errorf("LookupPublisher(%q).ID = %q, want %q", tt.query, p.ID, tt.wantID)
		}
	}
}
