// Package game holds the savable game state: the entity and client tables, the level
// and game records, the static item table, and the registries and field layouts that
// make them portable.
package game

// Vec3 is a position, angle set or colour.
type Vec3 [3]float32

// Behaviour signatures. Each receives the session explicitly.
type (
	Think   func(s *Session, self *Entity)
	Use     func(s *Session, self, other, activator *Entity)
	Touch   func(s *Session, self, other *Entity)
	Blocked func(s *Session, self, other *Entity)
	Pain    func(s *Session, self, other *Entity, kick float32, damage int)
	Die     func(s *Session, self, inflictor, attacker *Entity, damage int, point Vec3)
	AI      func(s *Session, self *Entity, dist float32)
)

// FrameTime is the length of one server frame in seconds.
const FrameTime float32 = 0.1

// Entity flags.
const (
	FlagFly uint32 = 1 << iota
	FlagSwim
	FlagImmuneLaser
	FlagInWater
	FlagGodMode
	FlagNoTarget
	FlagImmuneSlime
	FlagImmuneLava
	FlagPartialGround
	FlagWaterJump
	FlagTeamSlave
	FlagNoKnockback
	FlagPowerArmor
)

// savedClientFlags survive a level change through the client's persistent data.
const savedClientFlags = FlagGodMode | FlagNoTarget | FlagPowerArmor

// Spawn flags of fog entities.
const (
	FogOn      uint32 = 1
	FogToggle  uint32 = 2
	FogTurnOff uint32 = 4
)

// CrossTriggerMask selects the cross-level trigger bits of Game.ServerFlags.
const CrossTriggerMask uint32 = 0x000000ff

// MaxItems bounds the per-client inventory.
const MaxItems = 16

// MoveFrame is one frame of an animation sequence.
type MoveFrame struct {
	AI    AI
	Dist  float32
	Think Think
}

// MoveSequence is a static animation sequence. Monsters reference sequences by
// pointer; saves reference them by registered name.
type MoveSequence struct {
	FirstFrame int32
	LastFrame  int32
	Frames     []MoveFrame
	End        Think
}

// Item is an entry of the static item table.
type Item struct {
	Index      int
	ClassName  string
	PickupName string
	Quantity   int32
	Flags      uint32
}

// AreaLink is the spatial link state of an entity. It is owned by the host and
// rebuilt by Host.LinkEntity.
type AreaLink struct {
	Prev, Next *AreaLink
}

// MoveInfo drives doors, platforms and trains.
type MoveInfo struct {
	StartOrigin       Vec3
	StartAngles       Vec3
	EndOrigin         Vec3
	EndAngles         Vec3
	Speed             float32
	Accel             float32
	Decel             float32
	Wait              float32
	State             int32
	Dir               Vec3
	CurrentSpeed      float32
	RemainingDistance float32
	End               Think
}

// MonsterInfo is the AI state of monsters.
type MonsterInfo struct {
	CurrentMove    *MoveSequence
	SavedMove      *MoveSequence
	AIFlags        uint32
	NextFrame      int32
	Scale          float32
	Stand          Think
	Idle           Think
	Search         Think
	Walk           Think
	Run            Think
	Sight          Touch
	PauseTime      float32
	AttackFinished float32
	IdleTime       float32
	LastSighting   Vec3
}

// SpawnTemp holds keys read from the map's entity string that are only consulted
// while spawning. They are never saved.
type SpawnTemp struct {
	Sky       string
	SkyRotate float32
	SkyAxis   Vec3
	NextMap   string
	Gravity   string
	MinYaw    float32
	MaxYaw    float32
	MinPitch  float32
	MaxPitch  float32
}

// Entity is one slot of the entity table.
type Entity struct {
	// Num is the entity's index in Session.Entities. It is not saved; the slot
	// position carries it.
	Num int

	InUse     bool
	Area      AreaLink
	LinkCount int32
	Client    *Client

	Origin    Vec3
	Angles    Vec3
	Velocity  Vec3
	AVelocity Vec3
	Mins      Vec3
	Maxs      Vec3

	Frame      int32
	Solid      int32
	MoveType   int32
	Flags      uint32
	SpawnFlags uint32
	SvFlags    uint32

	Model      string
	ClassName  string
	TargetName string
	Target     string
	KillTarget string
	Team       string
	Message    string
	Map        string
	PathTarget string

	Health     int32
	MaxHealth  int32
	GibHealth  int32
	DeadFlag   int32
	TakeDamage int32
	Dmg        int32
	Count      int32
	Style      int32
	Sounds     int32
	Mass       int32

	Speed     float32
	Delay     float32
	Wait      float32
	Random    float32
	TimeStamp float32
	NextThink float32

	Think    Think
	PreThink Think
	Use      Use
	Touch    Touch
	Blocked  Blocked
	Pain     Pain
	Die      Die

	Enemy        *Entity
	OldEnemy     *Entity
	GoalEntity   *Entity
	MoveTarget   *Entity
	Owner        *Entity
	Activator    *Entity
	GroundEntity *Entity
	TeamChain    *Entity
	TeamMaster   *Entity
	Chain        *Entity

	Item *Item

	MoveInfo    MoveInfo
	MonsterInfo MonsterInfo

	FogIndex   int32
	FogModel   int32
	FogColor   Vec3
	FogNear    float32
	FogFar     float32
	FogDensity float32
	Density    float32
	GoalFrame  int32

	IsBot bool

	Spawn SpawnTemp
}

// ClientPersistent survives level changes.
type ClientPersistent struct {
	UserInfo     string
	NetName      string
	Hand         int32
	Connected    bool
	Health       int32
	MaxHealth    int32
	SavedFlags   uint32
	SelectedItem int32
	Inventory    [MaxItems]int32
	MaxBullets   int32
	MaxShells    int32
	MaxRockets   int32
	MaxGrenades  int32
	MaxCells     int32
	MaxSlugs     int32
	Weapon       *Item
	LastWeapon   *Item
	Score        int32
	Spectator    bool
}

// ClientRespawn is reset on every respawn.
type ClientRespawn struct {
	EnterFrame int32
	Score      int32
	CmdAngles  Vec3
	Spectator  bool
}

// Client is one slot of the client table.
type Client struct {
	// Index is the client's slot in Session.Clients. Client i plays entity i+1.
	Index int

	Pers ClientPersistent
	Resp ClientRespawn

	ViewAngles  Vec3
	KickAngles  Vec3
	KickOrigin  Vec3
	ViewHeight  float32
	NewWeapon   *Item
	WeaponState int32
	ChaseTarget *Entity
	ShowScores  bool
	ZoomFOV     float32
}

// Fog is one fog setting.
type Fog struct {
	Model    int32
	Color    Vec3
	Near     float32
	Far      float32
	Density  float32
	Density1 float32
	Density2 float32
}

// LevelLocals is the singleton per-level record.
type LevelLocals struct {
	FrameNum int32
	Time     float32

	LevelName string
	MapName   string
	NextMap   string

	IntermissionTime   float32
	ChangeMap          string
	ExitIntermission   bool
	IntermissionOrigin Vec3
	IntermissionAngle  Vec3

	SightClient   *Entity
	SightEntity   *Entity
	SoundEntity   *Entity
	CurrentEntity *Entity

	BodyQue        int32
	PowerCubes     int32
	TotalSecrets   int32
	FoundSecrets   int32
	TotalGoals     int32
	FoundGoals     int32
	TotalMonsters  int32
	KilledMonsters int32

	Fogs            int32
	TriggerFogs     int32
	ActiveFog       int32
	ActiveTargetFog int32
	Fog             Fog
}

// GameLocals is the level-independent game record.
type GameLocals struct {
	HelpMessage1 string
	HelpMessage2 string
	HelpChanged  int32
	SpawnPoint   string
	MaxClients   int32
	MaxEntities  int32
	ServerFlags  uint32
	NumItems     int32
	Autosaved    bool
}
