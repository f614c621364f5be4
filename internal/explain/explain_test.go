package explain

import (
	"strings"
	"testing"

	"github.com/truthguard-ai/truthguard/internal/classifier"
	"github.com/truthguard-ai/truthguard/internal/textstats"
)

func TestComposeFakeMentionsIndicators(t *testing.T) {
	profile := textstats.FeatureProfile{
		SensationalWordCount: 3,
		ExclamationCount:     5,
		CapsRatio:            0.25,
	}
	got := Compose(classifier.LabelFake, []string{"breaking", "shocking"}, profile)

	for _, want := range []string{
		"2 suspicious indicators",
		"3 sensational keywords",
		"5 exclamation marks",
		"25.0% capital letters",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("explanation missing %q: %s", want, got)
		}
	}
}

func TestComposeRealIsFixedTemplate(t *testing.T) {
	first := Compose(classifier.LabelReal, nil, textstats.FeatureProfile{})
	second := Compose(classifier.LabelReal, []string{"anything"}, textstats.FeatureProfile{ExclamationCount: 9})

	if first != second {
		t.Fatal("real explanation must not vary with inputs")
	}
	if !strings.Contains(first, "appears authentic") {
		t.Fatalf("unexpected real template: %s", first)
	}
}

func TestComposeDeterministic(t *testing.T) {
	profile := textstats.FeatureProfile{SensationalWordCount: 1, ExclamationCount: 2, CapsRatio: 0.1}
	a := Compose(classifier.LabelFake, []string{"hoax"}, profile)
	b := Compose(classifier.LabelFake, []string{"hoax"}, profile)
	if a != b {
		t.Fatal("explanation must be deterministic")
	}
}
