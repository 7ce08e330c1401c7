package service

// Fixed reply texts. Placeholders are filled with fmt verbs in generator.go
const (
	greetingText = "Hello %s! I'm your academic assistant. I can help you with academic queries, reminders, notices, and more. How can I assist you today?"

	timeText = "The current time is %s. Today is %s."
	dateText = "Today's date is %s."

	reminderSetText   = "✅ I've set a reminder for you:\n\n\"%s\"\n⏰ %s\n\nI'll help you remember when the time comes!"
	reminderUsageText = "I can help you set reminders! Try saying something like:\n\n" +
		"• \"Set reminder for tomorrow 10am study session\"\n" +
		"• \"Remind me about assignment due Friday\"\n" +
		"• \"Schedule meeting with group at 3pm\""

	noNoticesText    = "📭 No recent notices found for the %s department.\n\nCheck back later for updates!"
	noticeHeaderText = "📢 Latest notices from %s Department:\n\n"
	noticeItemText   = "%d. %s%s\n   📅 %s\n\n"
	noticeFooterText = "Visit the Notices page for complete details and older announcements."

	assignmentsText = "📚 Your Upcoming Assignments:\n\n" +
		"1. 🔴 Data Structures\n   📖 Binary Tree Implementation\n   ⏳ Due in: 2 days\n\n" +
		"2. 🟡 Calculus\n   📖 Chapter 5 Problems\n   ⏳ Due in: 5 days\n\n" +
		"3. 🟡 Database Systems\n   📖 ER Diagram Project\n   ⏳ Due in: 1 week\n\n" +
		"💡 Tip: Start with high-priority assignments and break them into smaller tasks!"

	ownDepartmentText = "🎓 You are in the %s Department.\n\n%s"
	departmentPeers   = "Connect with your department peers and share resources!"
	directoryHeader   = "🏫 Department Information:\n\n"

	helpText = `🤖 PBL Season 3 AI Assistant - Available Commands:

🎓 ACADEMIC HELP:
• "What assignments do I have?"
• "Show me study resources for [subject]"
• "What's my department information?"

📢 NOTICES & UPDATES:
• "Show latest notices"
• "Any updates from CSE department?"
• "What's new in my department?"

⏰ REMINDERS & SCHEDULING:
• "Set reminder for [time] [task]"
• "Remind me about [event]"
• "Schedule study session"

📅 GENERAL:
• "What time is it?"
• "What's today's date?"
• "Help" - Show this message

🎤 Voice commands also work! Click the microphone icon.`

	unknownText = "I'm not sure I understand. I can help with:\n" +
		"• Reminders and schedules\n• Department notices\n• Assignment tracking\n" +
		"• Study resources\n• Time and date\n• General academic questions\n\n" +
		"Try saying 'help' for more options!"
)

// study replies keyed by rule pack bucket id; "general" is the fallback
var studyTexts = map[string]string{
	"programming": "💻 Programming Resources:\n\n" +
		"• FreeCodeCamp.org\n• Codecademy\n• LeetCode for practice\n• GeeksforGeeks tutorials\n\n" +
		"💡 Practice daily and work on projects to improve!",
	"mathematics": "📐 Mathematics Resources:\n\n" +
		"• Khan Academy\n• Paul's Online Math Notes\n• Wolfram Alpha\n• MIT OpenCourseWare\n\n" +
		"💡 Practice problems regularly and understand concepts deeply!",
	"engineering": "⚙️ Engineering Resources:\n\n" +
		"• Coursera engineering courses\n• edX technical programs\n• YouTube engineering channels\n• University lecture archives\n\n" +
		"💡 Focus on practical applications and real-world problems!",
	"general": "📖 Study Resources Available:\n\n" +
		"• Coursera online courses\n• edX university programs\n• YouTube educational channels\n• Academic journals and papers\n\n" +
		"🔍 You can ask for specific subjects like programming, mathematics, or engineering!",
}

// quickCommands are the canned commands behind the quick action buttons
var quickCommands = map[string]string{
	"reminder":    "set reminder for tomorrow 10am study session",
	"notices":     "show latest notices from my department",
	"assignments": "what assignments do I have this week",
	"help":        "help",
}
