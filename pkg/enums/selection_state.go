package enums

// SelectionState tracks how far a shopper got on a product page.
type SelectionState string

const (
	SelectionStateEmpty                SelectionState = "empty"
	SelectionStateColorChosen          SelectionState = "color_chosen"
	SelectionStateSizeOrQuantityChosen SelectionState = "size_or_quantity_chosen"
	SelectionStateReadyForCheckout     SelectionState = "ready_for_checkout"
)

// String implements fmt.Stringer.
func (s SelectionState) String() string {
	return string(s)
}

// SelectionWarningType flags cells whose requested quantity the stock table
// cannot cover. Stock is advisory so these never block a selection.
type SelectionWarningType string

const (
	SelectionWarningOutOfStock   SelectionWarningType = "out_of_stock"
	SelectionWarningExceedsStock SelectionWarningType = "exceeds_stock"
)

// String implements fmt.Stringer.
func (w SelectionWarningType) String() string {
	return string(w)
}
