package statistic

func redisKeyPointLeaderBoard() string {
	return "leaderboard:point"
}
