package question

// Built-in question banks, ordered as presented to the learner.

var beginnerPersonal = []string{
	"Tell me about yourself and where you're from",
	"What do you do for work or study?",
	"Describe your family to me",
	"What are your favorite hobbies?",
	"Tell me about a typical day in your life",
}

var beginnerSituations = []string{
	"You're at a restaurant ordering food. Show me how you'd order your favorite meal",
	"You need directions to the nearest bank. Ask me for help",
	"You're meeting a new coworker. Introduce yourself",
	"You're shopping for clothes. Ask about sizes and prices",
	"You want to invite a friend for coffee. Make the invitation",
}

var intermediate = []string{
	"Tell me about a memorable trip you took",
	"Describe a challenge you faced and how you solved it",
	"What's a skill you'd like to learn and why?",
	"Tell me about someone who has influenced your life",
	"Describe your ideal weekend",
	"What's your opinion on working from home?",
	"How has technology changed your daily life?",
	"What's the best advice you've ever received?",
}

var advanced = []string{
	"What's your perspective on social media's impact on society?",
	"How do you think education will change in the next 10 years?",
	"Discuss the balance between work and personal life",
	"What role should governments play in environmental protection?",
	"How can we address inequality in society?",
	"What would you do if you were the leader of your country for a day?",
	"Discuss the advantages and disadvantages of globalization",
	"How might artificial intelligence change our future?",
}
