package wm

import (
	"testing"

	"wristos/apphost"
	"wristos/gfx"
)

func newTestRegistry() *Registry {
	return NewRegistry(240, 240)
}

func zorder(r *Registry) []ID {
	return r.ZOrder(nil)
}

func TestOpenFrontInsertAndFocus(t *testing.T) {
	r := newTestRegistry()

	a := r.Open(apphost.ContentCalculator, "")
	b := r.Open(apphost.ContentNotes, "")
	c := r.Open(apphost.ContentTimer, "")
	if a == None || b == None || c == None {
		t.Fatal("open failed with free slots")
	}

	z := zorder(r)
	if len(z) != 3 || z[0] != c || z[1] != b || z[2] != a {
		t.Fatalf("z-order = %v, want [%d %d %d]", z, c, b, a)
	}
	if r.Focus() != c {
		t.Fatalf("focus = %d, want newest %d", r.Focus(), c)
	}

	w := r.Window(a)
	if w == nil || w.Title != "Calc" {
		t.Fatalf("calculator window missing or untitled: %+v", w)
	}
	if w.Rect != (gfx.Rect{X: 20, Y: 20, W: 120, H: 140}) {
		t.Fatalf("calculator rect = %+v", w.Rect)
	}
}

func TestOpenExhaustedPoolIsSilent(t *testing.T) {
	r := newTestRegistry()
	for i := 0; i < MaxWindows; i++ {
		if r.Open(apphost.ContentNotes, "") == None {
			t.Fatalf("open %d failed below capacity", i)
		}
	}
	if id := r.Open(apphost.ContentNotes, ""); id != None {
		t.Fatalf("open beyond capacity returned %d, want None", id)
	}
	if r.OpenCount() != MaxWindows {
		t.Fatalf("open count = %d, want %d", r.OpenCount(), MaxWindows)
	}
}

func TestCloseHookFiresOncePerTeardown(t *testing.T) {
	r := newTestRegistry()
	var closed []ID
	r.OnClose = func(id ID) { closed = append(closed, id) }

	a := r.Open(apphost.ContentCalculator, "")
	b := r.Open(apphost.ContentNotes, "")

	r.Close(a)
	if len(closed) != 1 || closed[0] != a {
		t.Fatalf("close hook calls = %v, want [%d]", closed, a)
	}

	// A double close must not refire.
	r.Close(a)
	if len(closed) != 1 {
		t.Fatalf("close hook refired on a closed window: %v", closed)
	}

	r.CloseAll()
	if len(closed) != 2 || closed[1] != b {
		t.Fatalf("close hook calls = %v, want [%d %d]", closed, a, b)
	}
}

func TestCloseRefocusesFront(t *testing.T) {
	r := newTestRegistry()
	a := r.Open(apphost.ContentCalculator, "")
	b := r.Open(apphost.ContentNotes, "")
	c := r.Open(apphost.ContentTimer, "")

	r.Close(c)
	if r.Focus() != b {
		t.Fatalf("focus = %d after closing front, want %d", r.Focus(), b)
	}
	z := zorder(r)
	if len(z) != 2 || z[0] != b || z[1] != a {
		t.Fatalf("z-order = %v after close", z)
	}
	if r.Window(c) != nil {
		t.Fatal("closed window still retrievable")
	}

	// Closing twice is a no-op.
	r.Close(c)
	if r.OpenCount() != 2 {
		t.Fatalf("double close changed count to %d", r.OpenCount())
	}

	r.Close(b)
	r.Close(a)
	if r.Focus() != None || r.OpenCount() != 0 {
		t.Fatalf("focus = %d, count = %d after closing all", r.Focus(), r.OpenCount())
	}
}

func TestSlotReuseKeepsIDsStable(t *testing.T) {
	r := newTestRegistry()
	a := r.Open(apphost.ContentCalculator, "")
	b := r.Open(apphost.ContentNotes, "")

	r.Close(a)
	c := r.Open(apphost.ContentTimer, "")
	if c != a {
		t.Fatalf("freed slot not reused: got %d, want %d", c, a)
	}
	if w := r.Window(b); w == nil || w.Content != apphost.ContentNotes {
		t.Fatal("surviving window disturbed by slot reuse")
	}
}

func TestBringToFront(t *testing.T) {
	r := newTestRegistry()
	a := r.Open(apphost.ContentCalculator, "")
	b := r.Open(apphost.ContentNotes, "")
	c := r.Open(apphost.ContentTimer, "")

	r.BringToFront(a)
	z := zorder(r)
	if z[0] != a || z[1] != c || z[2] != b {
		t.Fatalf("z-order = %v after BringToFront(%d)", z, a)
	}
	if r.Focus() != a {
		t.Fatalf("focus = %d, want %d", r.Focus(), a)
	}

	// Idempotent on the front window.
	r.BringToFront(a)
	if z2 := zorder(r); len(z2) != 3 || z2[0] != a || z2[1] != c || z2[2] != b {
		t.Fatalf("z-order = %v after idempotent BringToFront", z2)
	}
}

func TestZOrderIsAlwaysAPermutationOfOpenWindows(t *testing.T) {
	r := newTestRegistry()
	ids := []ID{
		r.Open(apphost.ContentCalculator, ""),
		r.Open(apphost.ContentNotes, ""),
		r.Open(apphost.ContentTimer, ""),
		r.Open(apphost.ContentTodo, ""),
	}

	check := func(step string) {
		t.Helper()
		z := zorder(r)
		if len(z) != r.OpenCount() {
			t.Fatalf("%s: z len %d != open count %d", step, len(z), r.OpenCount())
		}
		seen := map[ID]bool{}
		for _, id := range z {
			if seen[id] {
				t.Fatalf("%s: duplicate id %d in z-order %v", step, id, z)
			}
			seen[id] = true
			if r.Window(id) == nil {
				t.Fatalf("%s: z-order holds closed id %d", step, id)
			}
		}
	}

	check("open")
	r.BringToFront(ids[1])
	check("raise mid")
	r.BringToFront(ids[0])
	check("raise back")
	r.Close(ids[2])
	check("close mid")
	r.Close(r.Focus())
	check("close front")
}

func TestEffectiveRectOverrides(t *testing.T) {
	r := newTestRegistry()
	id := r.Open(apphost.ContentNotes, "")
	stored := r.Window(id).Rect

	if r.EffectiveRect(id) != stored {
		t.Fatal("effective rect differs from stored rect")
	}

	r.SetMaximized(id, true)
	if r.EffectiveRect(id) != r.Screen() {
		t.Fatal("maximized window not screen-sized")
	}
	r.SetMaximized(id, false)
	if r.EffectiveRect(id) != stored {
		t.Fatal("restore lost the stored rect")
	}

	r.SetFullscreen(id, true)
	if r.EffectiveRect(id) != r.Screen() {
		t.Fatal("fullscreen window not screen-sized")
	}
}

func TestAnyFullBleed(t *testing.T) {
	r := newTestRegistry()
	band := gfx.Rect{X: 0, Y: 240 - TaskbarH, W: 240, H: TaskbarH}

	if r.AnyFullBleed(band) {
		t.Fatal("full bleed with no windows")
	}

	id := r.Open(apphost.ContentCalculator, "")
	if r.AnyFullBleed(band) {
		t.Fatal("small window reported full bleed")
	}

	r.Window(id).Rect.Y = 120 // extends into the band
	if !r.AnyFullBleed(band) {
		t.Fatal("band-overlapping window not reported")
	}

	r.Window(id).Rect.Y = 20
	r.SetMaximized(id, true)
	if !r.AnyFullBleed(band) {
		t.Fatal("maximized window not reported")
	}
}
