package dialog

import (
	"fmt"
	"strconv"

	"github.com/equilibriumhq/equilibrium-bot/internal/domain"
)

const (
	welcomeText = "🌟 Welcome to Equilibrium!\n" +
		"Your AI-powered wellness companion.\n\n" +
		"Choose an action below:"
	helpText = "Track your mood: /logmood [1-5]\n" +
		"View history: /history"
	settingsText = "⚙️ Settings are not available yet."

	askMoodText         = "How are you feeling today?"
	saveMoodFailureText = "⚠️ Failed to save mood. Please try again."
	cancelText          = "Conversation canceled. Goodbye!"
	endText             = "What would you like to do next?"
	invalidMoodText     = "⚠️ Please use: /logmood [1-5] (e.g., /logmood 4 Great day!)"

	logMoodButton  = "😊 Log Mood"
	historyButton  = "📊 Mood History"
	settingsButton = "⚙️ Settings"
	helpButton     = "ℹ️ Help"

	skipNotesButton = "Skip Notes ❌"
	skipNotesData   = "skip_notes"
)

var moodLabels = map[int]string{1: "😢 1", 2: "😞 2", 3: "😐 3", 4: "😊 4", 5: "😄 5"}

func mainMenuKeyboard() *domain.Keyboard {
	return &domain.Keyboard{Reply: [][]string{
		{logMoodButton, historyButton},
		{settingsButton, helpButton},
	}}
}

func moodKeyboard() *domain.Keyboard {
	row := make([]domain.InlineButton, 0, 5)
	for mood := 1; mood <= 5; mood++ {
		row = append(row, domain.InlineButton{
			Label: moodLabels[mood],
			Data:  strconv.Itoa(mood),
		})
	}
	return &domain.Keyboard{Inline: [][]domain.InlineButton{row}}
}

func skipNotesKeyboard() *domain.Keyboard {
	return &domain.Keyboard{Inline: [][]domain.InlineButton{
		{{Label: skipNotesButton, Data: skipNotesData}},
	}}
}

func selectedMoodText(mood int) string {
	return fmt.Sprintf("Selected mood: %d/5\nWant to add any notes? (e.g. 'Great workout today!')", mood)
}

func savedText(mood int, tip string) string {
	text := fmt.Sprintf("✅ Mood %d logged!", mood)
	if tip != "" {
		text += "\n\n💡 AI Tip: " + tip
	}
	return text
}
