package game

import "github.com/thruflo/hanoi/internal/events"

// DiskPegChange announces that Disk moved from SrcPeg to DstPeg.
// A rejected move is announced with SrcPeg == DstPeg so presentation can
// snap the disk back.
type DiskPegChange struct {
	SrcPeg int `json:"srcPeg"`
	DstPeg int `json:"dstPeg"`
	Disk   int `json:"disk"`
}

// IsNoop reports whether the change is a snap-back of a rejected move.
func (c DiskPegChange) IsNoop() bool {
	return c.SrcPeg == c.DstPeg
}

type GameConditionChange struct {
	Condition GameCondition `json:"condition"`
}

type SolverConditionChange struct {
	Condition SolverCondition `json:"condition"`
}

type InteractivityChange struct {
	IsInteractive bool `json:"isInteractive"`
}

type DisksCountChange struct {
	Count int `json:"count"`
}

type StepChange struct {
	Step int `json:"step"`
}

// DiskGrab is published by presentation when the player picks up a disk.
type DiskGrab struct {
	Weight int `json:"weight"`
}

// Engine notifications.
var (
	PegsGenerated             = events.NewTopic[struct{}]("pegsGenerated")
	DiskPegChanged            = events.NewTopic[DiskPegChange]("diskPegChanged")
	GameConditionChanged      = events.NewTopic[GameConditionChange]("gameConditionChanged")
	DisksInteractivityChanged = events.NewTopic[InteractivityChange]("disksInteractivityChanged")
	DisksCountChanged         = events.NewTopic[DisksCountChange]("disksCountChanged")
	StepChanged               = events.NewTopic[StepChange]("stepChanged")
	SolverConditionChanged    = events.NewTopic[SolverConditionChange]("solverConditionChanged")
)

// Presentation notifications, consumed by the grab/drop glue that ends in
// Engine.MoveDisk.
var (
	DiskGrabbed         = events.NewTopic[DiskGrab]("diskGrabbed")
	GrabbedDiskMoved    = events.NewTopic[struct{}]("grabbedDiskMoved")
	GrabbedDiskReleased = events.NewTopic[struct{}]("grabbedDiskReleased")
)
