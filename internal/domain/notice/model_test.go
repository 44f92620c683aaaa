package notice_test

import (
	"strings"
	"testing"

	"gymdesk/internal/domain/notice"
)

// TestNoticeValidation tests validation of Notice.
func TestNoticeValidation(t *testing.T) {
	tests := []struct {
		name    string
		notice  notice.Notice
		wantErr error
	}{
		{
			name:    "valid notice",
			notice:  notice.Notice{Title: "Pool closed", Content: "The pool is closed **Friday** for maintenance."},
			wantErr: nil,
		},
		{
			name:    "empty title",
			notice:  notice.Notice{Title: "  ", Content: "body"},
			wantErr: notice.ErrEmptyTitle,
		},
		{
			name:    "empty content",
			notice:  notice.Notice{Title: "Pool closed", Content: ""},
			wantErr: notice.ErrEmptyContent,
		},
		{
			name:    "title too long",
			notice:  notice.Notice{Title: strings.Repeat("x", 201), Content: "body"},
			wantErr: notice.ErrTitleTooLong,
		},
		{
			name:    "content too long",
			notice:  notice.Notice{Title: "Pool closed", Content: strings.Repeat("x", 10001)},
			wantErr: notice.ErrContentTooLong,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.notice.Validate(); err != tt.wantErr {
				t.Errorf("Notice.Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
