package model

import "testing"

func TestSupportedURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want bool
	}{
		{
			name: "watch URL",
			url:  "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
			want: true,
		},
		{
			name: "shorts URL",
			url:  "https://youtube.com/shorts/abc123",
			want: true,
		},
		{
			name: "short link",
			url:  "https://youtu.be/dQw4w9WgXcQ",
			want: true,
		},
		{
			name: "playlist URL",
			url:  "https://www.youtube.com/playlist?list=PL123",
			want: true,
		},
		{
			name: "marker embedded in query parameter is accepted",
			url:  "https://evil.example.com/?next=youtube.com/watch",
			want: true,
		},
		{
			name: "channel URL",
			url:  "https://www.youtube.com/@somechannel",
			want: false,
		},
		{
			name: "unrelated host",
			url:  "https://vimeo.com/12345",
			want: false,
		},
		{
			name: "empty string",
			url:  "",
			want: false,
		},
		{
			name: "bare video ID",
			url:  "dQw4w9WgXcQ",
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SupportedURL(tt.url); got != tt.want {
				t.Errorf("SupportedURL(%q) = %v, want %v", tt.url, got, tt.want)
			}
		})
	}
}
