package services

import (
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/schemadiff/internal/core/domain"
)

func TestDiffer_Compare(t *testing.T) {
	tests := []struct {
		name string
		old  domain.FlattenedSchema
		new  domain.FlattenedSchema
		want []domain.ChangeRecord
	}{
		{
			name: "identical",
			old:  domain.FlattenedSchema{"/Document": {Type: "DocType"}},
			new:  domain.FlattenedSchema{"/Document": {Type: "DocType"}},
			want: nil,
		},
		{
			name: "both empty",
			old:  domain.FlattenedSchema{},
			new:  domain.FlattenedSchema{},
			want: nil,
		},
		{
			name: "added",
			old:  domain.FlattenedSchema{"/Document": {Type: "DocType"}},
			new: domain.FlattenedSchema{
				"/Document":           {Type: "DocType"},
				"/Document/Reference": {Type: "xs:string"},
			},
			want: []domain.ChangeRecord{
				{Kind: domain.ChangeAdded, Path: "/Document/Reference", NewType: "xs:string"},
			},
		},
		{
			name: "removed keeps old annotation",
			old: domain.FlattenedSchema{
				"/Document":        {Type: "DocType"},
				"/Document/Amount": {Type: "xs:decimal", Annotation: "yellow field"},
			},
			new: domain.FlattenedSchema{"/Document": {Type: "DocType"}},
			want: []domain.ChangeRecord{
				{Kind: domain.ChangeRemoved, Path: "/Document/Amount", OldType: "xs:decimal", Annotation: "yellow field"},
			},
		},
		{
			name: "modified takes precedence over annotation",
			old:  domain.FlattenedSchema{"/Document/Amount": {Type: "xs:decimal"}},
			new:  domain.FlattenedSchema{"/Document/Amount": {Type: "xs:string", Annotation: "yellow field"}},
			want: []domain.ChangeRecord{
				{
					Kind: domain.ChangeModified, Path: "/Document/Amount",
					OldType: "xs:decimal", NewType: "xs:string", Annotation: "yellow field",
				},
			},
		},
		{
			name: "annotation gained",
			old:  domain.FlattenedSchema{"/Document/Amount": {Type: "xs:decimal"}},
			new:  domain.FlattenedSchema{"/Document/Amount": {Type: "xs:decimal", Annotation: "Yellow Field"}},
			want: []domain.ChangeRecord{
				{
					Kind: domain.ChangeAnnotationChanged, Path: "/Document/Amount",
					OldType: "xs:decimal", NewType: "xs:decimal", Annotation: "Yellow Field",
				},
			},
		},
		{
			name: "annotation lost is not reported",
			old:  domain.FlattenedSchema{"/Document/Amount": {Type: "xs:decimal", Annotation: "yellow field"}},
			new:  domain.FlattenedSchema{"/Document/Amount": {Type: "xs:decimal"}},
			want: nil,
		},
		{
			name: "annotation case change is not reported",
			old:  domain.FlattenedSchema{"/Document/Amount": {Type: "xs:decimal", Annotation: "yellow field"}},
			new:  domain.FlattenedSchema{"/Document/Amount": {Type: "xs:decimal", Annotation: "YELLOW FIELD"}},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewDiffer().Compare(tt.old, tt.new)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Compare() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDiffer_Compare_SortedByPath(t *testing.T) {
	old := domain.FlattenedSchema{
		"/Document/Z": {Type: "xs:string"},
		"/Document/M": {Type: "xs:string"},
	}
	updated := domain.FlattenedSchema{
		"/Document/A": {Type: "xs:string"},
		"/Document/M": {Type: "xs:int"},
	}

	got := NewDiffer().Compare(old, updated)

	require.Len(t, got, 3)
	paths := []string{got[0].Path, got[1].Path, got[2].Path}
	assert.True(t, sort.StringsAreSorted(paths))
	assert.Equal(t, domain.ChangeAdded, got[0].Kind)
	assert.Equal(t, domain.ChangeModified, got[1].Kind)
	assert.Equal(t, domain.ChangeRemoved, got[2].Kind)
}

func TestDiffer_Compare_SelfIsEmpty(t *testing.T) {
	s := domain.FlattenedSchema{
		"/Document":        {Type: "DocType"},
		"/Document/Amount": {Type: "xs:decimal", Annotation: "yellow field"},
	}

	assert.Empty(t, NewDiffer().Compare(s, s))
}

func TestDiffer_Compare_ExclusivePathsYieldOneRecord(t *testing.T) {
	old := domain.FlattenedSchema{
		"/Document":   {Type: "DocType"},
		"/Document/A": {Type: "xs:string"},
		"/Document/B": {Type: "xs:string"},
	}
	updated := domain.FlattenedSchema{
		"/Document":   {Type: "DocType"},
		"/Document/B": {Type: "xs:string"},
		"/Document/C": {Type: "xs:string"},
	}

	got := NewDiffer().Compare(old, updated)

	counts := make(map[string]int)
	for _, c := range got {
		counts[c.Path]++
	}
	assert.Equal(t, map[string]int{"/Document/A": 1, "/Document/C": 1}, counts)
}

func TestDiffer_Compare_Asymmetric(t *testing.T) {
	a := domain.FlattenedSchema{"/Document/X": {Type: "xs:string"}}
	b := domain.FlattenedSchema{"/Document/X": {Type: "xs:string", Annotation: "yellow field"}}
	d := NewDiffer()

	assert.Len(t, d.Compare(a, b), 1)
	assert.Empty(t, d.Compare(b, a))
}
