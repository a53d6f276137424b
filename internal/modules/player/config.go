package player

// Config holds the player module configuration.
type Config struct {
	// Engine selects the playback engine: "remote" drives a widget over
	// the event stream, "mpv" drives a local mpv process.
	Engine string `env:"AURALIS_ENGINE" envDefault:"remote"`

	// MPVSocket is the mpv JSON IPC socket path, used when Engine is "mpv".
	MPVSocket string `env:"AURALIS_MPV_SOCKET" envDefault:"/tmp/auralis-mpv.sock"`

	// EventBufferSize is the event bus channel buffer size.
	EventBufferSize int `env:"AURALIS_EVENT_BUFFER_SIZE" envDefault:"100"`
}
