package main

import "testing"

func TestParseCourseURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantAPI string
		wantID  int64
		wantErr bool
	}{
		{
			name:    "plain course URL",
			url:     "https://canvas.example.edu/courses/345",
			wantAPI: "https://canvas.example.edu/api/v1",
			wantID:  345,
		},
		{
			name:    "course subpage",
			url:     "https://canvas.example.edu/courses/345/assignments/23",
			wantAPI: "https://canvas.example.edu/api/v1",
			wantID:  345,
		},
		{
			name:    "no course id",
			url:     "https://canvas.example.edu/dashboard",
			wantErr: true,
		},
		{
			name:    "non-numeric id",
			url:     "https://canvas.example.edu/courses/abc",
			wantErr: true,
		},
		{
			name:    "not a URL",
			url:     "definitely not a url",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api, id, err := parseCourseURL(tt.url)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got api=%q id=%d", api, id)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if api != tt.wantAPI {
				t.Errorf("expected api %q, got %q", tt.wantAPI, api)
			}
			if id != tt.wantID {
				t.Errorf("expected id %d, got %d", tt.wantID, id)
			}
		})
	}
}

func TestPathName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Programming 101", "Programming_101"},
		{"Data Structures & Algorithms", "Data_Structures__Algorithms"},
		{"  spaced   out  ", "_spaced_out_"},
	}

	for _, tt := range tests {
		if got := pathName(tt.in); got != tt.want {
			t.Errorf("pathName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
