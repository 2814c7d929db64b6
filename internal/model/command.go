package model

// Command is a word in the fixed client vocabulary. Anything else is
// either a numeric move or malformed.
type Command string

const (
	CommandHelp  Command = "help"
	CommandStart Command = "start"
	CommandHuman Command = "human"
	CommandCPU   Command = "cpu"
	CommandExit  Command = "exit"
	CommandHard  Command = "hard"
	CommandEasy  Command = "easy"
)

// Commands lists the vocabulary in help order
var Commands = []Command{
	CommandHelp,
	CommandStart,
	CommandHuman,
	CommandCPU,
	CommandExit,
	CommandHard,
	CommandEasy,
}

var commandDescriptions = map[Command]string{
	CommandHelp:  "help - shows a list of the available commands",
	CommandStart: "start - tells the server that you are ready to play",
	CommandHuman: "human - tells the server that you wish to play against a human player",
	CommandCPU:   "cpu - tells the server that you wish to play against a computer controlled opponent",
	CommandExit:  "exit - exit the current game session",
	CommandHard:  "hard - chooses hard mode: 2 to 100 marbles",
	CommandEasy:  "easy - chooses easy mode: 2 to 20 marbles",
}

// Description returns the help line for the command
func (c Command) Description() string {
	return commandDescriptions[c]
}
