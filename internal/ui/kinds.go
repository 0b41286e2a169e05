package ui

const (
	bubbleTrickle = PropagationBubbles | PropagationTricklesDown
	interactive   = bubbleTrickle | PropagationSkipDisabled
)

// Pointer events.
var (
	KindPointerDown   = MustRegisterKind("PointerDown", CategoryPointer, interactive, RouteCapturingOrUnderPointer)
	KindPointerUp     = MustRegisterKind("PointerUp", CategoryPointer, interactive, RouteCapturingOrUnderPointer)
	KindPointerMove   = MustRegisterKind("PointerMove", CategoryPointer, interactive, RouteCapturingOrUnderPointer)
	KindPointerCancel = MustRegisterKind("PointerCancel", CategoryPointer, interactive, RouteCapturingOrUnderPointer)

	KindPointerOver  = MustRegisterKind("PointerOver", CategoryPointer, bubbleTrickle, RouteAssignedTarget)
	KindPointerOut   = MustRegisterKind("PointerOut", CategoryPointer, bubbleTrickle, RouteAssignedTarget)
	KindPointerEnter = MustRegisterKind("PointerEnter", CategoryPointerEnterLeave, PropagationTricklesDown, RouteAssignedTarget)
	KindPointerLeave = MustRegisterKind("PointerLeave", CategoryPointerEnterLeave, PropagationTricklesDown, RouteAssignedTarget)

	KindGotPointerCapture  = MustRegisterKind("GotPointerCapture", CategoryPointerCapture, PropagationNone, RouteAssignedTarget)
	KindLostPointerCapture = MustRegisterKind("LostPointerCapture", CategoryPointerCapture, PropagationNone, RouteAssignedTarget)
)

// Legacy mouse-shaped events, mirrored from pointer events by the
// compatibility bridge and synthesized by the under-pointer tracker.
var (
	KindMouseDown = MustRegisterKind("MouseDown", CategoryMouse, interactive, RouteCapturingOrUnderPointer)
	KindMouseUp   = MustRegisterKind("MouseUp", CategoryMouse, interactive, RouteCapturingOrUnderPointer)
	KindMouseMove = MustRegisterKind("MouseMove", CategoryMouse, interactive, RouteCapturingOrUnderPointer)

	KindMouseOver  = MustRegisterKind("MouseOver", CategoryMouse, bubbleTrickle, RouteAssignedTarget)
	KindMouseOut   = MustRegisterKind("MouseOut", CategoryMouse, bubbleTrickle, RouteAssignedTarget)
	KindMouseEnter = MustRegisterKind("MouseEnter", CategoryMouseEnterLeave, PropagationTricklesDown, RouteAssignedTarget)
	KindMouseLeave = MustRegisterKind("MouseLeave", CategoryMouseEnterLeave, PropagationTricklesDown, RouteAssignedTarget)

	KindWheel = MustRegisterKind("Wheel", CategoryMouse, interactive, RouteCapturingOrUnderPointer)
)

// KindClick is synthesized when a pointer is pressed and released over the
// same element.
var KindClick = MustRegisterKind("Click", CategoryClick, interactive, RouteUnderPointerOrRoot)

// Drag and drop events.
var (
	KindDragEnter   = MustRegisterKind("DragEnter", CategoryDragAndDrop, PropagationTricklesDown, RouteAssignedTarget)
	KindDragLeave   = MustRegisterKind("DragLeave", CategoryDragAndDrop, PropagationTricklesDown, RouteAssignedTarget)
	KindDragUpdated = MustRegisterKind("DragUpdated", CategoryDragAndDrop, interactive, RouteCapturingOrUnderPointer)
	KindDragPerform = MustRegisterKind("DragPerform", CategoryDragAndDrop, interactive, RouteCapturingOrUnderPointer)
	KindDragExited  = MustRegisterKind("DragExited", CategoryDragAndDrop, interactive, RouteCapturingOrUnderPointer)
)

// Keyboard, focus and command events.
var (
	KindKeyDown = MustRegisterKind("KeyDown", CategoryKeyboard, interactive, RouteFocusedOrRoot)
	KindKeyUp   = MustRegisterKind("KeyUp", CategoryKeyboard, interactive, RouteFocusedOrRoot)

	KindFocusOut = MustRegisterKind("FocusOut", CategoryFocus, bubbleTrickle, RouteAssignedTarget)
	KindFocusIn  = MustRegisterKind("FocusIn", CategoryFocus, bubbleTrickle, RouteAssignedTarget)
	KindBlur     = MustRegisterKind("Blur", CategoryFocus, PropagationTricklesDown, RouteAssignedTarget)
	KindFocus    = MustRegisterKind("Focus", CategoryFocus, PropagationTricklesDown, RouteAssignedTarget)

	KindValidateCommand = MustRegisterKind("ValidateCommand", CategoryCommand, interactive, RouteFocusedOrRoot)
	KindExecuteCommand  = MustRegisterKind("ExecuteCommand", CategoryCommand, interactive, RouteFocusedOrRoot)
)

// Panel-level events.
var (
	KindContextualMenuPopulate = MustRegisterKind("ContextualMenuPopulate", CategoryContextMenu, bubbleTrickle, RouteAssignedTarget)
	KindPanelResized           = MustRegisterKind("PanelResized", CategoryPanel, bubbleTrickle, RoutePanelRoot)
)

// IsPointerKind reports whether k carries a pointer payload routed by pointer id.
func IsPointerKind(k *Kind) bool {
	return k.Category().Has(CategoryPointer | CategoryMouse | CategoryDragAndDrop | CategoryClick)
}

// IsDragKind reports whether k belongs to a drag and drop session.
func IsDragKind(k *Kind) bool {
	return k.Category().Has(CategoryDragAndDrop)
}
