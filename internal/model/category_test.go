package model

import "testing"

func TestNormalizeCategory(t *testing.T) {
	tests := []struct {
		name   string
		in     GameCategory
		want   SkillCategory
		wantOK bool
	}{
		{"language", CategoryLanguage, SkillLanguage, true},
		{"culture", CategoryCulture, SkillCulture, true},
		// The game spelling differs from the bucket key.
		{"soft_skills", CategorySoftSkills, SkillSoftSkills, true},
		{"empty", "", "", false},
		{"bucket_spelling_rejected", GameCategory("softSkills"), "", false},
		{"unknown", GameCategory("math"), "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NormalizeCategory(tt.in)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("NormalizeCategory(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestSkillAccessor(t *testing.T) {
	progress := &UserProgress{}
	progress.Language.XP = 10

	if bucket := progress.Skill(SkillLanguage); bucket == nil || bucket.XP != 10 {
		t.Errorf("language bucket = %+v", bucket)
	}
	if bucket := progress.Skill("nonsense"); bucket != nil {
		t.Errorf("unknown category returned a bucket: %+v", bucket)
	}

	// The accessor must return the embedded field itself, not a copy.
	progress.Skill(SkillCulture).XP = 42
	if progress.Culture.XP != 42 {
		t.Error("Skill returned a copy instead of the embedded bucket")
	}
}

func TestChallengeTarget(t *testing.T) {
	tests := []struct {
		name string
		c    Challenge
		want int
	}{
		{"earn_xp_uses_target_xp", Challenge{Type: ChallengeEarnXP, TargetXP: 100, TargetCount: 3}, 100},
		{"count_type", Challenge{Type: ChallengePlayGames, TargetCount: 3}, 3},
		{"defaults_to_one", Challenge{Type: ChallengePerfectScore}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.c.Target(); got != tt.want {
				t.Errorf("Target() = %d, want %d", got, tt.want)
			}
		})
	}
}
