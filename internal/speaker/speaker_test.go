package speaker

import (
	"os"
	"path/filepath"
	"testing"

	"moves/internal/sectionproducer"
)

func withTempHome(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	return dir
}

func writeTempPDF(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte("not a real pdf"), 0o644); err != nil {
		t.Fatalf("write temp pdf: %v", err)
	}
	return path
}

func TestAddRejectsNameCollidingWithSpeakerID(t *testing.T) {
	withTempHome(t)
	pres := writeTempPDF(t, "p.pdf")
	trans := writeTempPDF(t, "t.pdf")

	first, err := Add("Jane Doe", pres, trans)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if _, err := Add(first.SpeakerID, pres, trans); err == nil {
		t.Fatal("expected error adding a name colliding with an existing speaker_id")
	}
}

func TestListRoundTripsAddedSpeakers(t *testing.T) {
	withTempHome(t)
	pres := writeTempPDF(t, "p.pdf")
	trans := writeTempPDF(t, "t.pdf")
	sp, err := Add("Jane Doe", pres, trans)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	speakers, err := List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(speakers) != 1 || speakers[0].SpeakerID != sp.SpeakerID {
		t.Fatalf("List() = %+v, want one speaker %q", speakers, sp.SpeakerID)
	}
}

func TestResolveByIDAndByName(t *testing.T) {
	withTempHome(t)
	pres := writeTempPDF(t, "p.pdf")
	trans := writeTempPDF(t, "t.pdf")
	sp, _ := Add("Jane Doe", pres, trans)

	byID, err := Resolve(sp.SpeakerID)
	if err != nil || byID.Kind != ResolveUnique {
		t.Fatalf("Resolve(id) = %+v, err=%v", byID, err)
	}

	byName, err := Resolve("Jane Doe")
	if err != nil || byName.Kind != ResolveUnique {
		t.Fatalf("Resolve(name) = %+v, err=%v", byName, err)
	}
}

func TestResolveAmbiguousAcrossSharedName(t *testing.T) {
	withTempHome(t)
	pres := writeTempPDF(t, "p.pdf")
	trans := writeTempPDF(t, "t.pdf")
	Add("Jane Doe", pres, trans)
	Add("Jane Doe", pres, trans)

	result, err := Resolve("Jane Doe")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if result.Kind != ResolveAmbiguous || len(result.Matches) != 2 {
		t.Fatalf("Resolve() = %+v, want Ambiguous with 2 matches", result)
	}
}

func TestResolveNotFound(t *testing.T) {
	withTempHome(t)
	result, err := Resolve("nobody")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if result.Kind != ResolveNotFound {
		t.Fatalf("Resolve() = %+v, want NotFound", result)
	}
}

func TestDeleteRemovesSpeakerDirectory(t *testing.T) {
	withTempHome(t)
	pres := writeTempPDF(t, "p.pdf")
	trans := writeTempPDF(t, "t.pdf")
	sp, _ := Add("Jane Doe", pres, trans)

	if err := Delete(sp); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	speakers, _ := List()
	if len(speakers) != 0 {
		t.Fatalf("List() after delete = %+v, want empty", speakers)
	}
}

func TestResolveInputCachesAbsoluteSourcePath(t *testing.T) {
	withTempHome(t)
	sourcePDF := writeTempPDF(t, "deck.pdf")
	if !filepath.IsAbs(sourcePDF) {
		t.Fatalf("writeTempPDF returned a non-absolute path: %q", sourcePDF)
	}

	cachedPath, from, err := resolveInput(sourcePDF, "speaker-1", "presentation.pdf")
	if err != nil {
		t.Fatalf("resolveInput: %v", err)
	}
	if from != sectionproducer.SourceFromSource {
		t.Fatalf("resolveInput from = %v, want SourceFromSource", from)
	}
	if !fileExists(cachedPath) {
		t.Fatalf("resolveInput did not cache the file at %q", cachedPath)
	}
	data, err := os.ReadFile(cachedPath)
	if err != nil {
		t.Fatalf("read cached file: %v", err)
	}
	if string(data) != "not a real pdf" {
		t.Fatalf("cached file content = %q", data)
	}

	// A second call with the same speaker ID, but no fresh source, must
	// fall back to the now-cached copy.
	cachedAgain, from2, err := resolveInput("", "speaker-1", "presentation.pdf")
	if err != nil {
		t.Fatalf("resolveInput (cached fallback): %v", err)
	}
	if from2 != sectionproducer.SourceFromLocal {
		t.Fatalf("resolveInput from = %v, want SourceFromLocal", from2)
	}
	if cachedAgain != cachedPath {
		t.Fatalf("resolveInput cached path = %q, want %q", cachedAgain, cachedPath)
	}
}

func TestAddResolvesSourcePathsToAbsolute(t *testing.T) {
	withTempHome(t)
	dir := t.TempDir()
	absPres := filepath.Join(dir, "p.pdf")
	absTrans := filepath.Join(dir, "t.pdf")
	if err := os.WriteFile(absPres, []byte("p"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.WriteFile(absTrans, []byte("t"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	relPres, err := filepath.Rel(wd, absPres)
	if err != nil {
		t.Fatalf("rel: %v", err)
	}
	relTrans, err := filepath.Rel(wd, absTrans)
	if err != nil {
		t.Fatalf("rel: %v", err)
	}

	sp, err := Add("Jane Doe", relPres, relTrans)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if !filepath.IsAbs(sp.SourcePresentation) || !filepath.IsAbs(sp.SourceTranscript) {
		t.Fatalf("Add() stored non-absolute paths: %+v", sp)
	}
}

func TestLoadSectionsBeforeProcessIsActionableError(t *testing.T) {
	withTempHome(t)
	pres := writeTempPDF(t, "p.pdf")
	trans := writeTempPDF(t, "t.pdf")
	sp, _ := Add("Jane Doe", pres, trans)

	if _, err := LoadSections(sp); err == nil {
		t.Fatal("expected error loading sections before process has run")
	}
}
