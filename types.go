package main

import "image"

type model struct {
	width          int
	height         int
	config         *Config
	source         image.Image
	puzzle         *Puzzle
	canvas         *Canvas
	scheduler      *frameScheduler
	sound          SoundPlayer
	mode           Mode
	help           bool
	confirmAction  ConfirmAction
	undoStack      []Action
	redoStack      []Action
	frame          string
	dirty          bool
	errorMessage   string
	successMessage string
}

type Action struct {
	Type    ActionType
	Data    interface{}
	Inverse interface{}
}

type MovePieceData struct {
	Index int
	Pos   Point
}
