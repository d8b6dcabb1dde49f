package button

// LEDSettings is the pulse pattern used while the button is held.
type LEDSettings struct {
	Brightness  byte   `yaml:"brightness"`
	CycleTimeMs uint16 `yaml:"cycleTimeMs"`
	OffTimeMs   uint16 `yaml:"offTimeMs"`
}

// BoardSettings is the on-disk configuration of one button board.
type BoardSettings struct {
	Bus            string `yaml:"bus"`
	Address        uint16 `yaml:"address"`
	PollIntervalMs int    `yaml:"pollIntervalMs"`
	DebounceTimeMs int    `yaml:"debounceTimeMs"`

	LED LEDSettings `yaml:"led"`
}

var (
	DefaultBoardSettings = BoardSettings{
		Bus:            "1",
		Address:        DefaultAddress,
		PollIntervalMs: 20,
		DebounceTimeMs: 10,
		LED: LEDSettings{
			Brightness:  250,
			CycleTimeMs: 1000,
			OffTimeMs:   200,
		},
	}
)
