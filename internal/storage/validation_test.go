package storage

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Veraticus/crux/internal/model"
)

func TestValidateContext(t *testing.T) {
	tests := []struct {
		ctx     context.Context
		name    string
		wantErr bool
	}{
		{
			name:    "valid context",
			ctx:     context.Background(),
			wantErr: false,
		},
		{
			name:    "nil context",
			ctx:     nil,
			wantErr: true,
		},
		{
			name: "canceled context still valid",
			ctx: func() context.Context {
				ctx, cancel := context.WithCancel(context.Background())
				cancel()
				return ctx
			}(),
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateContext(tt.ctx)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateContext() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateString(t *testing.T) {
	tests := []struct {
		name      string
		str       string
		paramName string
		wantErr   bool
	}{
		{
			name:      "valid string",
			str:       "test",
			paramName: "param",
			wantErr:   false,
		},
		{
			name:      "empty string",
			str:       "",
			paramName: "param",
			wantErr:   true,
		},
		{
			name:      "whitespace only",
			str:       "   ",
			paramName: "param",
			wantErr:   true,
		},
		{
			name:      "string with spaces",
			str:       "  test  ",
			paramName: "param",
			wantErr:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateString(tt.str, tt.paramName)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateString() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !strings.Contains(err.Error(), tt.paramName) {
				t.Errorf("validateString() error should contain param name %s, got %v", tt.paramName, err)
			}
		})
	}
}

func TestValidateTable(t *testing.T) {
	day := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		table   *model.Table
		name    string
		wantErr error
	}{
		{
			name:  "valid table",
			table: model.NewTable([]model.Record{{Date: day, Weekday: model.Monday, Month: model.January, TotalVisits: 10}}),
		},
		{
			name:  "empty table",
			table: model.NewTable(nil),
		},
		{
			name:  "unknown weekday is storable",
			table: model.NewTable([]model.Record{{Date: day, Month: model.January}}),
		},
		{
			name:    "nil table",
			wantErr: ErrNilParameter,
		},
		{
			name:    "zero date",
			table:   model.NewTable([]model.Record{{Month: model.January}}),
			wantErr: ErrInvalidRecord,
		},
		{
			name:    "negative count",
			table:   model.NewTable([]model.Record{{Date: day, Month: model.January, MealVisits: -1}}),
			wantErr: ErrInvalidRecord,
		},
		{
			name:    "unknown month",
			table:   model.NewTable([]model.Record{{Date: day, Weekday: model.Monday}}),
			wantErr: ErrInvalidRecord,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateTable(tt.table)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("validateTable() unexpected error = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("validateTable() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
