package questionbank

import (
	"fmt"

	"eco-quest-service/internal/domain"
)

// DefaultID is the id of the built-in bank.
const DefaultID = "default"

var quizQuestions = []domain.Question{
	{
		ID:           1,
		Prompt:       "What percentage of plastic waste is actually recycled globally?",
		Options:      []string{"9%", "25%", "45%", "60%"},
		CorrectIndex: 0,
		Explanation:  "Only about 9% of plastic waste is recycled globally. Most plastic ends up in landfills or the environment.",
		Difficulty:   domain.DifficultyMedium,
	},
	{
		ID:           2,
		Prompt:       "Which gas is the primary contributor to the greenhouse effect?",
		Options:      []string{"Oxygen", "Nitrogen", "Carbon Dioxide", "Hydrogen"},
		CorrectIndex: 2,
		Explanation:  "Carbon dioxide (CO2) is the primary greenhouse gas responsible for climate change.",
		Difficulty:   domain.DifficultyEasy,
	},
	{
		ID:           3,
		Prompt:       "How long does it take for a plastic bottle to decompose naturally?",
		Options:      []string{"50 years", "100 years", "450 years", "1000 years"},
		CorrectIndex: 2,
		Explanation:  "Plastic bottles take approximately 450 years to decompose completely in natural conditions.",
		Difficulty:   domain.DifficultyHard,
	},
	{
		ID:           4,
		Prompt:       "What is the most effective way to reduce your carbon footprint?",
		Options:      []string{"Recycling more", "Using renewable energy", "Eating less meat", "Walking instead of driving"},
		CorrectIndex: 1,
		Explanation:  "Using renewable energy sources has the greatest impact on reducing individual carbon footprints.",
		Difficulty:   domain.DifficultyMedium,
	},
	{
		ID:           5,
		Prompt:       "Which of these activities saves the most water?",
		Options:      []string{"Taking shorter showers", "Fixing leaky faucets", "Using efficient appliances", "Collecting rainwater"},
		CorrectIndex: 1,
		Explanation:  "A single dripping faucet can waste over 3,000 gallons per year, making repairs highly effective.",
		Difficulty:   domain.DifficultyEasy,
	},
}

var pictureQuestions = []domain.PictureQuestion{
	{
		ID:          1,
		Prompt:      "Which transportation method is most eco-friendly for short distances?",
		Description: "Choose the best option for reducing carbon emissions on trips under 5 miles.",
		Options: []domain.PictureOption{
			{Emoji: "🚗", Label: "Car", Description: "Gasoline vehicle"},
			{Emoji: "🚲", Label: "Bicycle", Description: "Human-powered transport", Correct: true},
			{Emoji: "🏍️", Label: "Motorcycle", Description: "Motor vehicle"},
			{Emoji: "🚌", Label: "Bus", Description: "Public transport"},
		},
		Explanation: "Bicycles produce zero emissions and are perfect for short-distance travel while providing health benefits.",
	},
	{
		ID:          2,
		Prompt:      "Which energy source is the most sustainable?",
		Description: "Select the renewable energy option that has the least environmental impact.",
		Options: []domain.PictureOption{
			{Emoji: "☀️", Label: "Solar", Description: "Photovoltaic panels", Correct: true},
			{Emoji: "⛽", Label: "Gas", Description: "Natural gas"},
			{Emoji: "⚡", Label: "Nuclear", Description: "Atomic energy"},
			{Emoji: "🔥", Label: "Coal", Description: "Fossil fuel"},
		},
		Explanation: "Solar energy is completely renewable, produces no emissions during operation, and has minimal environmental impact.",
	},
	{
		ID:          3,
		Prompt:      "What's the most effective way to reduce waste?",
		Description: "Choose the approach that has the greatest positive environmental impact.",
		Options: []domain.PictureOption{
			{Emoji: "♻️", Label: "Recycle", Description: "Process materials again"},
			{Emoji: "🚫", Label: "Refuse", Description: "Don't use unnecessary items", Correct: true},
			{Emoji: "🔄", Label: "Reuse", Description: "Use items multiple times"},
			{Emoji: "🗑️", Label: "Dispose", Description: "Throw away properly"},
		},
		Explanation: "Refusing unnecessary items prevents waste from being created in the first place - the most effective approach!",
	},
	{
		ID:          4,
		Prompt:      "Which shopping choice is most environmentally friendly?",
		Description: "Select the option that minimizes packaging waste and carbon footprint.",
		Options: []domain.PictureOption{
			{Emoji: "🛒", Label: "Local Market", Description: "Fresh, local produce", Correct: true},
			{Emoji: "📦", Label: "Online Shopping", Description: "Delivered products"},
			{Emoji: "🏪", Label: "Chain Store", Description: "Large retail chain"},
			{Emoji: "🛍️", Label: "Mall Shopping", Description: "Shopping center"},
		},
		Explanation: "Local markets typically offer fresh, unpackaged produce with minimal transportation emissions.",
	},
}

// Quiz returns a copy of the built-in trivia questions.
func Quiz() []domain.Question {
	out := make([]domain.Question, len(quizQuestions))
	for i, q := range quizQuestions {
		q.Options = append([]string(nil), q.Options...)
		out[i] = q
	}
	return out
}

// Pictures returns a copy of the built-in picture questions.
func Pictures() []domain.PictureQuestion {
	out := make([]domain.PictureQuestion, len(pictureQuestions))
	for i, q := range pictureQuestions {
		q.Options = append([]domain.PictureOption(nil), q.Options...)
		out[i] = q
	}
	return out
}

// Default returns the built-in bank.
func Default() domain.Bank {
	return domain.Bank{ID: DefaultID, Quiz: Quiz(), Pictures: Pictures()}
}

// Validate checks that every question has a usable correct answer.
func Validate(bank domain.Bank) error {
	if len(bank.Quiz) == 0 || len(bank.Pictures) == 0 {
		return fmt.Errorf("%w: bank %q has no questions", domain.ErrInvalidBank, bank.ID)
	}
	for _, q := range bank.Quiz {
		if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
			return fmt.Errorf("%w: quiz question %d correct index %d out of range", domain.ErrInvalidBank, q.ID, q.CorrectIndex)
		}
	}
	for _, q := range bank.Pictures {
		correct := 0
		for _, opt := range q.Options {
			if opt.Correct {
				correct++
			}
		}
		if correct != 1 {
			return fmt.Errorf("%w: picture question %d has %d correct options", domain.ErrInvalidBank, q.ID, correct)
		}
	}
	return nil
}
