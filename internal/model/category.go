package model

// GameCategory is the category a game is published under.
type GameCategory string

const (
	CategoryLanguage   GameCategory = "language"
	CategoryCulture    GameCategory = "culture"
	CategorySoftSkills GameCategory = "soft-skills"
)

// SkillCategory keys a skill bucket on UserProgress. Note the spelling
// difference with GameCategory: "soft-skills" on games, "softSkills" in
// progress buckets. NormalizeCategory is the only place the two meet.
type SkillCategory string

const (
	SkillLanguage   SkillCategory = "language"
	SkillCulture    SkillCategory = "culture"
	SkillSoftSkills SkillCategory = "softSkills"
)

// NormalizeCategory maps a game category to its skill bucket.
// Unknown categories return ok=false and must not touch any bucket.
func NormalizeCategory(category GameCategory) (SkillCategory, bool) {
	switch category {
	case CategoryLanguage:
		return SkillLanguage, true
	case CategoryCulture:
		return SkillCulture, true
	case CategorySoftSkills:
		return SkillSoftSkills, true
	default:
		return "", false
	}
}

// SkillCategories lists the buckets in display order.
func SkillCategories() []SkillCategory {
	return []SkillCategory{SkillLanguage, SkillCulture, SkillSoftSkills}
}
