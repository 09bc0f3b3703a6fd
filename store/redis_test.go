package store

import (
	"reflect"
	"testing"

	"github.com/socraticlabs/copilot/discussion"
)

func TestPartitionLive(t *testing.T) {
	tests := []struct {
		name      string
		ids       []string
		exists    []bool
		wantLive  []string
		wantStale []string
	}{
		{
			name:     "all live",
			ids:      []string{"a", "b"},
			exists:   []bool{true, true},
			wantLive: []string{"a", "b"},
		},
		{
			name:      "expired value dropped from listing",
			ids:       []string{"a", "b", "c"},
			exists:    []bool{true, false, true},
			wantLive:  []string{"a", "c"},
			wantStale: []string{"b"},
		},
		{
			name:      "all expired",
			ids:       []string{"a", "b"},
			exists:    []bool{false, false},
			wantStale: []string{"a", "b"},
		},
		{
			name:      "short exists treats tail as stale",
			ids:       []string{"a", "b"},
			exists:    []bool{true},
			wantLive:  []string{"a"},
			wantStale: []string{"b"},
		},
		{
			name: "empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			live, stale := partitionLive(tt.ids, tt.exists)
			if !reflect.DeepEqual(live, tt.wantLive) {
				t.Errorf("live = %v, want %v", live, tt.wantLive)
			}
			if !reflect.DeepEqual(stale, tt.wantStale) {
				t.Errorf("stale = %v, want %v", stale, tt.wantStale)
			}
		})
	}
}

func TestSummariesFromTitles(t *testing.T) {
	got := summariesFromTitles(
		[]string{"a", "b", "c", "d"},
		[]interface{}{"First", nil, "", "Fourth"},
	)

	want := []Summary{
		{ID: "a", Title: "First"},
		{ID: "b", Title: discussion.DefaultTitle},
		{ID: "c", Title: discussion.DefaultTitle},
		{ID: "d", Title: "Fourth"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("summaries = %v, want %v", got, want)
	}
}
