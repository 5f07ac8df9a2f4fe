package story

// English source strings. Front ends pass them through a locale catalog,
// so each constant doubles as a translation key.

const (
	Title = "Whispers in the Dark"
)

// Scene titles.
const (
	TitleIntro    = "The Threshold"
	TitleFoyer    = "The Foyer"
	TitleUpstairs = "Upstairs Corridor"
	TitleBasement = "The Basement"
	TitleSecret   = "A Hidden Door"
	TitleEndGood  = "You escaped."
	TitleEndBad   = "You sank into the darkness..."
)

// Scene descriptions.
const (
	DescIntro          = "You stand on the threshold of an unfamiliar building. A cold draft slides down your spine. You hear a whisper, as if someone had called your name..."
	DescIntroPrompt    = "What will you do?"
	DescFoyer          = "A dark foyer. A torch lies on the floor. Stairs lead up and down."
	DescFoyerLit       = "A dark foyer, a little less dark in the torchlight. Stairs lead up and down."
	DescUpstairs       = "Several doors line the corridor, and at its end a window hangs half open. Moonlight through the window mingles with the light."
	DescUpstairsPrompt = "Which door will you choose?"
	DescBasement       = "The basement is thick with damp and stench. Old writing is faintly visible on the walls."
	DescSecret         = "You notice a seam in the wall, a hidden door. The clues you gathered seem to answer it."
	DescEndGood        = "Under the moonlight you breathe deeply, free of the dark. But the whispers may return at any time..."
	DescEndBad         = "An end that is not an end. You fade beyond memory."
)

// Choice labels.
const (
	LabelEnter      = "Go inside"
	LabelRetreat    = "Turn back"
	LabelTakeTorch  = "Pick up the torch"
	LabelGoUpstairs = "Go upstairs"
	LabelGoBasement = "Go down to the basement"
	LabelLeftRoom   = "Left room"
	LabelRightRoom  = "Right room"
	LabelReturn     = "Back to the foyer"
	LabelDeepRoom   = "Into the deep room"
	LabelFlee       = "Run"
	LabelOpenDoor   = "Open the door"
	LabelRestart    = "Start over"
)

// Narrative lines emitted while resolving a choice.
const (
	SayTorchLit       = "The torch flickers on. A faint light pushes the dark back."
	SayAlreadyTorch   = "You already have the torch."
	SayDiary          = "An old diary lies in the room. As you turn its pages, you can almost hear footsteps."
	SayEmptyRoom      = "The room is empty. But the air is cold."
	SayShadow         = "Thanks to the torch you can look carefully. A shadow slides across the ceiling."
	SayDarkEncounter  = "Something brushes past you in the dark..."
	SayNoteFound      = "You find a scrap of paper in a crack in the floor. It says: Go back."
	SayDoll           = "Your torch finds a corner where an old doll stares back at you. Its eyes glint."
	SayDollReaches    = "The doll reaches for you..."
	SayOldToy         = "The doll is just an old toy."
	SayLunge          = "Something lunges at you from the dark."
	SayBlackout       = "A suffocating terror washes over you... you lose consciousness."
	SayEscaped        = "You barely make it out. You are short of breath."
	SaySecretRevealed = "The clues you carry stir. Something in the wall gives way."
	SayDoorOpensOut   = "The door opens onto cool night air."
	SayDoorOpensDark  = "The door opens onto a darkness deeper than the house."
)

// Journey log entries.
const (
	LogEntered      = "Opened the door and stepped inside."
	LogRetreated    = "Turned back. But there was no path behind..."
	LogTookTorch    = "Picked up the torch. The darkness drew back a little."
	LogWentUpstairs = "Headed upstairs."
	LogWentBasement = "Went down to the basement."
	LogLeftRoom     = "Opened the left room."
	LogFoundDiary   = "Found an old diary."
	LogRightRoom    = "Opened the right room."
	LogReturned     = "Went back down to the foyer."
	LogFoundNote    = "Found a note that said: Go back."
	LogDeepRoom     = "Went into the deep room of the basement."
	LogDollMoved    = "The doll moved."
	LogFled         = "Fled in a hurry."
	LogHiddenDoor   = "Noticed a hidden door in the wall."
	LogOpenedDoor   = "Found the hidden door and opened it."
)

// Labels used by front ends.
const (
	LabelFear         = "Fear"
	LabelJournal      = "Journey log"
	LabelJournalEmpty = "Nothing has happened yet."
)
