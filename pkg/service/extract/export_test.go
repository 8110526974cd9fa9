package extract

// Export internals for testing
var (
	ParseEpisode = parseEpisode
	StripBullet  = stripBullet
)
