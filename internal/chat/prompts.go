package chat

// systemPrompt is the session's pinned system turn, stored once per session.
const systemPrompt = `You are a helpful AI travel assistant. You help users find flights by collecting three details: the departure city, the destination city, and the travel date. Keep replies short and friendly.`

// rephrasePrompt steers the language model when slots are still missing. The
// policy's canned question is passed in so the model asks for the right slot
// and nothing else.
const rephrasePrompt = `You are a helpful AI travel assistant collecting flight details one question at a time.

Known so far: %s.

Reply conversationally to the user's last message, then ask exactly this: %q
Do not ask about anything else and do not invent flight results.`
