package domain

// Modality identifies which tracking stream a frame came from.
type Modality string

const (
	ModalityFace Modality = "face"
	ModalityHand Modality = "hand"
)

// Handedness identifies which hand a detection belongs to.
// The empty value means "any" when used as a filter.
type Handedness string

const (
	HandLeft  Handedness = "Left"
	HandRight Handedness = "Right"
)

// Gesture is a discrete classified hand pose.
// Values follow the MediaPipe gesture recognizer category names.
type Gesture string

const (
	GestureNone       Gesture = "None"
	GestureClosedFist Gesture = "Closed_Fist"
	GestureOpenPalm   Gesture = "Open_Palm"
	GesturePointingUp Gesture = "Pointing_Up"
	GestureThumbDown  Gesture = "Thumb_Down"
	GestureThumbUp    Gesture = "Thumb_Up"
	GestureVictory    Gesture = "Victory"
	GestureILoveYou   Gesture = "ILoveYou"
)

// BlendShape names a facial expression coefficient in [0,1].
// Values follow the ARKit / MediaPipe face blendshape names.
type BlendShape string

const (
	BrowDownLeft        BlendShape = "browDownLeft"
	BrowDownRight       BlendShape = "browDownRight"
	BrowInnerUp         BlendShape = "browInnerUp"
	BrowOuterUpLeft     BlendShape = "browOuterUpLeft"
	BrowOuterUpRight    BlendShape = "browOuterUpRight"
	CheekPuff           BlendShape = "cheekPuff"
	CheekSquintLeft     BlendShape = "cheekSquintLeft"
	CheekSquintRight    BlendShape = "cheekSquintRight"
	EyeBlinkLeft        BlendShape = "eyeBlinkLeft"
	EyeBlinkRight       BlendShape = "eyeBlinkRight"
	EyeLookDownLeft     BlendShape = "eyeLookDownLeft"
	EyeLookDownRight    BlendShape = "eyeLookDownRight"
	EyeLookInLeft       BlendShape = "eyeLookInLeft"
	EyeLookInRight      BlendShape = "eyeLookInRight"
	EyeLookOutLeft      BlendShape = "eyeLookOutLeft"
	EyeLookOutRight     BlendShape = "eyeLookOutRight"
	EyeLookUpLeft       BlendShape = "eyeLookUpLeft"
	EyeLookUpRight      BlendShape = "eyeLookUpRight"
	EyeSquintLeft       BlendShape = "eyeSquintLeft"
	EyeSquintRight      BlendShape = "eyeSquintRight"
	EyeWideLeft         BlendShape = "eyeWideLeft"
	EyeWideRight        BlendShape = "eyeWideRight"
	JawForward          BlendShape = "jawForward"
	JawLeft             BlendShape = "jawLeft"
	JawOpen             BlendShape = "jawOpen"
	JawRight            BlendShape = "jawRight"
	MouthClose          BlendShape = "mouthClose"
	MouthDimpleLeft     BlendShape = "mouthDimpleLeft"
	MouthDimpleRight    BlendShape = "mouthDimpleRight"
	MouthFrownLeft      BlendShape = "mouthFrownLeft"
	MouthFrownRight     BlendShape = "mouthFrownRight"
	MouthFunnel         BlendShape = "mouthFunnel"
	MouthLeft           BlendShape = "mouthLeft"
	MouthLowerDownLeft  BlendShape = "mouthLowerDownLeft"
	MouthLowerDownRight BlendShape = "mouthLowerDownRight"
	MouthPressLeft      BlendShape = "mouthPressLeft"
	MouthPressRight     BlendShape = "mouthPressRight"
	MouthPucker         BlendShape = "mouthPucker"
	MouthRight          BlendShape = "mouthRight"
	MouthRollLower      BlendShape = "mouthRollLower"
	MouthRollUpper      BlendShape = "mouthRollUpper"
	MouthShrugLower     BlendShape = "mouthShrugLower"
	MouthShrugUpper     BlendShape = "mouthShrugUpper"
	MouthSmileLeft      BlendShape = "mouthSmileLeft"
	MouthSmileRight     BlendShape = "mouthSmileRight"
	MouthStretchLeft    BlendShape = "mouthStretchLeft"
	MouthStretchRight   BlendShape = "mouthStretchRight"
	MouthUpperUpLeft    BlendShape = "mouthUpperUpLeft"
	MouthUpperUpRight   BlendShape = "mouthUpperUpRight"
	NoseSneerLeft       BlendShape = "noseSneerLeft"
	NoseSneerRight      BlendShape = "noseSneerRight"
	TongueOut           BlendShape = "tongueOut"
)

// Point3D is a normalized landmark position.
type Point3D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// FaceData is one face tracking frame.
type FaceData struct {
	BlendShapes map[BlendShape]float64 `json:"blend_shapes"`
	IsTracking  bool                   `json:"is_tracking"`
	TimestampMs int64                  `json:"timestamp_ms"`
}

// BlendShape returns the coefficient for name, or 0 when the frame does not carry it.
func (f *FaceData) BlendShape(name BlendShape) float64 {
	if f == nil {
		return 0
	}
	return f.BlendShapes[name]
}

// Hand is a single tracked hand within a HandData frame.
type Hand struct {
	Handedness        Handedness `json:"handedness"`
	Gesture           Gesture    `json:"gesture"`
	GestureConfidence float64    `json:"gesture_confidence"`
	Landmarks         []Point3D  `json:"landmarks,omitempty"`
}

// HandData is one hand tracking frame.
type HandData struct {
	Hands       []Hand `json:"hands"`
	IsTracking  bool   `json:"is_tracking"`
	TimestampMs int64  `json:"timestamp_ms"`
}

var knownGestures = map[Gesture]bool{
	GestureNone: true, GestureClosedFist: true, GestureOpenPalm: true, GesturePointingUp: true,
	GestureThumbDown: true, GestureThumbUp: true, GestureVictory: true, GestureILoveYou: true,
}

var knownBlendShapes = map[BlendShape]bool{
	BrowDownLeft: true, BrowDownRight: true, BrowInnerUp: true, BrowOuterUpLeft: true, BrowOuterUpRight: true,
	CheekPuff: true, CheekSquintLeft: true, CheekSquintRight: true,
	EyeBlinkLeft: true, EyeBlinkRight: true, EyeLookDownLeft: true, EyeLookDownRight: true,
	EyeLookInLeft: true, EyeLookInRight: true, EyeLookOutLeft: true, EyeLookOutRight: true,
	EyeLookUpLeft: true, EyeLookUpRight: true, EyeSquintLeft: true, EyeSquintRight: true,
	EyeWideLeft: true, EyeWideRight: true,
	JawForward: true, JawLeft: true, JawOpen: true, JawRight: true,
	MouthClose: true, MouthDimpleLeft: true, MouthDimpleRight: true, MouthFrownLeft: true, MouthFrownRight: true,
	MouthFunnel: true, MouthLeft: true, MouthLowerDownLeft: true, MouthLowerDownRight: true,
	MouthPressLeft: true, MouthPressRight: true, MouthPucker: true, MouthRight: true,
	MouthRollLower: true, MouthRollUpper: true, MouthShrugLower: true, MouthShrugUpper: true,
	MouthSmileLeft: true, MouthSmileRight: true, MouthStretchLeft: true, MouthStretchRight: true,
	MouthUpperUpLeft: true, MouthUpperUpRight: true, NoseSneerLeft: true, NoseSneerRight: true,
	TongueOut: true,
}

// KnownGesture reports whether g is one of the built-in gesture categories.
func KnownGesture(g Gesture) bool { return knownGestures[g] }

// KnownBlendShape reports whether bs is one of the 52 standard blend shapes.
func KnownBlendShape(bs BlendShape) bool { return knownBlendShapes[bs] }
