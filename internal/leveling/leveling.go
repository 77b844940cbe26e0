// Package leveling maps total XP to levels. All functions are pure.
package leveling

// XPPerLevel is the XP width of every level above the first.
const XPPerLevel = 100

// Level returns the level for the given XP total. Level 1 is the floor.
func Level(xp int) int {
	if xp < 0 {
		xp = 0
	}
	return max(1, xp/XPPerLevel)
}

// XPForLevel returns the XP total at which level begins. Level 1 begins at
// zero so that every XP total sits inside the band of its own level.
func XPForLevel(level int) int {
	if level <= 1 {
		return 0
	}
	return level * XPPerLevel
}

// XPProgress returns how far xp is into its current level.
func XPProgress(xp int) int {
	if xp < 0 {
		xp = 0
	}
	return xp - XPForLevel(Level(xp))
}

// XPForNextLevel returns the XP still needed to reach the next level.
func XPForNextLevel(xp int) int {
	if xp < 0 {
		xp = 0
	}
	return XPForLevel(Level(xp)+1) - xp
}

// ProgressFraction returns progress through the current level in [0, 1).
func ProgressFraction(xp int) float64 {
	if xp < 0 {
		xp = 0
	}
	lvl := Level(xp)
	span := XPForLevel(lvl+1) - XPForLevel(lvl)
	if span <= 0 {
		return 0
	}
	return float64(XPProgress(xp)) / float64(span)
}
