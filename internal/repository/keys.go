package repository

import "fmt"

const keyPrefix = "tictactoe"

func scoreKey(sessionID string) string {
	return fmt.Sprintf("%s:score:%s", keyPrefix, sessionID)
}

func themeKey(sessionID string) string {
	return fmt.Sprintf("%s:theme:%s", keyPrefix, sessionID)
}
