package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func int64Ptr(v int64) *int64 { return &v }

func TestStandardRuleValidate(t *testing.T) {
	tests := []struct {
		name    string
		rule    StandardRule
		wantErr bool
	}{
		{
			name: "valid contains rule",
			rule: StandardRule{Pattern: "rent", MatchType: MatchContains, CategoryID: int64Ptr(1)},
		},
		{
			name:    "missing pattern",
			rule:    StandardRule{MatchType: MatchContains, CategoryID: int64Ptr(1)},
			wantErr: true,
		},
		{
			name:    "unknown match type",
			rule:    StandardRule{Pattern: "rent", MatchType: "fuzzy", CategoryID: int64Ptr(1)},
			wantErr: true,
		},
		{
			name:    "assigns nothing",
			rule:    StandardRule{Pattern: "rent", MatchType: MatchExact},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.rule.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAdvancedRuleValidate(t *testing.T) {
	valid := AdvancedRule{
		DescriptionPattern: "mortgage",
		MatchType:          MatchContains,
		DateLogic:          DateLogic{Type: DateLogicDayRange, StartDay: 1, EndDay: 10},
		PropertyID:         int64Ptr(1),
	}
	assert.NoError(t, valid.Validate())

	noProperty := valid
	noProperty.PropertyID = nil
	assert.Error(t, noProperty.Validate())

	badRange := valid
	badRange.DateLogic = DateLogic{Type: DateLogicDayRange, StartDay: 12, EndDay: 3}
	assert.Error(t, badRange.Validate())

	badOrdinal := valid
	badOrdinal.DateLogic = DateLogic{Type: DateLogicOrdinal, Position: 0}
	assert.Error(t, badOrdinal.Validate())

	startsWith := valid
	startsWith.MatchType = MatchStartsWith
	assert.Error(t, startsWith.Validate(), "advanced rules only support contains, exact and regex")
}
