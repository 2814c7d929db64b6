package model

import "fmt"

// Queued notifications delivered to players through polling.
const (
	MsgAlreadyQueued    = "You are already in the queue for a match."
	MsgCPUGameStarted   = "Computer controlled game started!"
	MsgLobbyCreated     = "A new match lobby has been created for you."
	MsgLobbyAssigned    = "You have been assigned to an existing match lobby!"
	MsgCPUMatchStarted  = "Match with the computer has started."
	MsgYourTurn         = "It is your turn."
	MsgOtherTurn        = "It is the other players turn."
	MsgNotYourTurn      = "It is not currently your turn. Please wait for the other player to make their move!"
	MsgGaveUp           = "You have given up!"
	MsgWon              = "You have won the game!"
	MsgLost             = "You have lost the game!"
	MsgMatchEnded       = "The match has ended, you can now start a new game!"
	MsgNotAValidCommand = "Not a valid command."
)

// MatchFoundMessage announces pairing and the starting pile
func MatchFoundMessage(total int) string {
	return fmt.Sprintf("Match found!\nThe total amount of marbles is %d", total)
}

// InvalidMoveMessage explains a rejected move
func InvalidMoveMessage(current int) string {
	return fmt.Sprintf("This is an invalid move.\nYou may only pick a number greater than one and smaller than half of the marbles left!\nThe total amount of marbles is %d", current)
}

// MovePickedMessage confirms a move to the mover
func MovePickedMessage(amount int) string {
	return fmt.Sprintf("%d marbles picked.\nIt is now the other players turn.", amount)
}

// OpponentMovedMessage tells a human what the other human took
func OpponentMovedMessage(amount, remaining int) string {
	return fmt.Sprintf("The other player has taken %d marbles.\nThere are now %d marbles left.\nMake your move!", amount, remaining)
}

// CPUMovedMessage tells a human what the computer took
func CPUMovedMessage(amount, remaining int) string {
	return fmt.Sprintf("The CPU has taken %d marbles.\nThe total is now %d", amount, remaining)
}
