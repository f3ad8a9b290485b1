package platform

import "testing"

func TestFilterAccept(t *testing.T) {
	f := NewFilter(Options{})

	tests := []struct {
		name  string
		state WindowState
		want  bool
	}{
		{
			name:  "visible titled window",
			state: WindowState{Title: "Editor", Class: "Notepad", Visible: true},
			want:  true,
		},
		{
			name:  "empty title",
			state: WindowState{Title: "", Class: "Notepad", Visible: true},
			want:  false,
		},
		{
			name:  "invisible",
			state: WindowState{Title: "Editor", Visible: false},
			want:  false,
		},
		{
			name:  "cloaked",
			state: WindowState{Title: "Settings", Visible: true, Cloaked: true},
			want:  false,
		},
		{
			name:  "desktop shell by class",
			state: WindowState{Title: "Program Manager", Class: "Progman", Visible: true},
			want:  false,
		},
		{
			name:  "desktop shell by type",
			state: WindowState{Title: "Desktop", Class: "xfdesktop", Visible: true, Desktop: true},
			want:  false,
		},
		{
			name:  "class comparison ignores case",
			state: WindowState{Title: "Program Manager", Class: "progman", Visible: true},
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f.Accept(tt.state); got != tt.want {
				t.Fatalf("Accept(%+v) = %v, want %v", tt.state, got, tt.want)
			}
		})
	}
}

func TestNewFilter_CustomClassesReplaceDefaults(t *testing.T) {
	f := NewFilter(Options{ExcludeClasses: []string{"Shell_TrayWnd"}})

	if f.Accept(WindowState{Title: "Taskbar", Class: "Shell_TrayWnd", Visible: true}) {
		t.Fatalf("expected Shell_TrayWnd to be excluded")
	}
	if !f.Accept(WindowState{Title: "Program Manager", Class: "Progman", Visible: true}) {
		t.Fatalf("expected Progman to be accepted once defaults are replaced")
	}
}

func TestNewFilter_EmptyListExcludesNothing(t *testing.T) {
	f := NewFilter(Options{ExcludeClasses: []string{}})
	if !f.Accept(WindowState{Title: "Program Manager", Class: "Progman", Visible: true}) {
		t.Fatalf("expected explicit empty list to disable class exclusion")
	}
}

func TestRectTranslate(t *testing.T) {
	r := Rect{Left: 100, Top: 10, Right: 900, Bottom: 500}
	got := r.Translate(2560)
	want := Rect{Left: 2660, Top: 10, Right: 3460, Bottom: 500}
	if got != want {
		t.Fatalf("Translate = %+v, want %+v", got, want)
	}
	if got.Width() != r.Width() || got.Height() != r.Height() {
		t.Fatalf("translate changed size: %dx%d", got.Width(), got.Height())
	}
}
