package oracle

import "context"

// The QueryMultipleN functions execute a PL/SQL block that opens N REF
// CURSORs, drain the first N declared cursors in declaration order, decode
// cursor i into []Ti and pass the slices to fn positionally. The returned
// slice always holds exactly one element, fn's result.
//
// params defaults to Cursors(nil) when nil. Driver errors such as ORA-01008
// are returned unchanged.

// QueryMultiple1 maps a single cursor.
func QueryMultiple1[T1, R any](ctx context.Context, c *Commander, text string, params *CursorParameters, fn func([]T1) R) ([]R, error) {
	sets, err := c.queryMultiple(ctx, text, params, decodeAs[T1])
	if err != nil {
		return nil, err
	}
	return []R{fn(sets[0].([]T1))}, nil
}

// QueryMultiple2 maps 2 cursors.
func QueryMultiple2[T1, T2, R any](ctx context.Context, c *Commander, text string, params *CursorParameters, fn func([]T1, []T2) R) ([]R, error) {
	sets, err := c.queryMultiple(ctx, text, params, decodeAs[T1], decodeAs[T2])
	if err != nil {
		return nil, err
	}
	return []R{fn(sets[0].([]T1), sets[1].([]T2))}, nil
}

// QueryMultiple3 maps 3 cursors.
func QueryMultiple3[T1, T2, T3, R any](ctx context.Context, c *Commander, text string, params *CursorParameters, fn func([]T1, []T2, []T3) R) ([]R, error) {
	sets, err := c.queryMultiple(ctx, text, params, decodeAs[T1], decodeAs[T2], decodeAs[T3])
	if err != nil {
		return nil, err
	}
	return []R{fn(sets[0].([]T1), sets[1].([]T2), sets[2].([]T3))}, nil
}

// QueryMultiple4 maps 4 cursors.
func QueryMultiple4[T1, T2, T3, T4, R any](ctx context.Context, c *Commander, text string, params *CursorParameters, fn func([]T1, []T2, []T3, []T4) R) ([]R, error) {
	sets, err := c.queryMultiple(ctx, text, params, decodeAs[T1], decodeAs[T2], decodeAs[T3], decodeAs[T4])
	if err != nil {
		return nil, err
	}
	return []R{fn(sets[0].([]T1), sets[1].([]T2), sets[2].([]T3), sets[3].([]T4))}, nil
}

// QueryMultiple5 maps 5 cursors.
func QueryMultiple5[T1, T2, T3, T4, T5, R any](ctx context.Context, c *Commander, text string, params *CursorParameters, fn func([]T1, []T2, []T3, []T4, []T5) R) ([]R, error) {
	sets, err := c.queryMultiple(ctx, text, params, decodeAs[T1], decodeAs[T2], decodeAs[T3], decodeAs[T4], decodeAs[T5])
	if err != nil {
		return nil, err
	}
	return []R{fn(sets[0].([]T1), sets[1].([]T2), sets[2].([]T3), sets[3].([]T4), sets[4].([]T5))}, nil
}

// QueryMultiple6 maps 6 cursors.
func QueryMultiple6[T1, T2, T3, T4, T5, T6, R any](ctx context.Context, c *Commander, text string, params *CursorParameters, fn func([]T1, []T2, []T3, []T4, []T5, []T6) R) ([]R, error) {
	sets, err := c.queryMultiple(ctx, text, params, decodeAs[T1], decodeAs[T2], decodeAs[T3], decodeAs[T4], decodeAs[T5], decodeAs[T6])
	if err != nil {
		return nil, err
	}
	return []R{fn(sets[0].([]T1), sets[1].([]T2), sets[2].([]T3), sets[3].([]T4), sets[4].([]T5), sets[5].([]T6))}, nil
}

// QueryMultiple7 maps 7 cursors.
func QueryMultiple7[T1, T2, T3, T4, T5, T6, T7, R any](ctx context.Context, c *Commander, text string, params *CursorParameters, fn func([]T1, []T2, []T3, []T4, []T5, []T6, []T7) R) ([]R, error) {
	sets, err := c.queryMultiple(ctx, text, params, decodeAs[T1], decodeAs[T2], decodeAs[T3], decodeAs[T4], decodeAs[T5], decodeAs[T6], decodeAs[T7])
	if err != nil {
		return nil, err
	}
	return []R{fn(sets[0].([]T1), sets[1].([]T2), sets[2].([]T3), sets[3].([]T4), sets[4].([]T5), sets[5].([]T6), sets[6].([]T7))}, nil
}

// QueryMultiple8 maps 8 cursors.
func QueryMultiple8[T1, T2, T3, T4, T5, T6, T7, T8, R any](ctx context.Context, c *Commander, text string, params *CursorParameters, fn func([]T1, []T2, []T3, []T4, []T5, []T6, []T7, []T8) R) ([]R, error) {
	sets, err := c.queryMultiple(ctx, text, params, decodeAs[T1], decodeAs[T2], decodeAs[T3], decodeAs[T4], decodeAs[T5], decodeAs[T6], decodeAs[T7], decodeAs[T8])
	if err != nil {
		return nil, err
	}
	return []R{fn(sets[0].([]T1), sets[1].([]T2), sets[2].([]T3), sets[3].([]T4), sets[4].([]T5), sets[5].([]T6), sets[6].([]T7), sets[7].([]T8))}, nil
}

// QueryMultiple9 maps 9 cursors.
func QueryMultiple9[T1, T2, T3, T4, T5, T6, T7, T8, T9, R any](ctx context.Context, c *Commander, text string, params *CursorParameters, fn func([]T1, []T2, []T3, []T4, []T5, []T6, []T7, []T8, []T9) R) ([]R, error) {
	sets, err := c.queryMultiple(ctx, text, params, decodeAs[T1], decodeAs[T2], decodeAs[T3], decodeAs[T4], decodeAs[T5], decodeAs[T6], decodeAs[T7], decodeAs[T8], decodeAs[T9])
	if err != nil {
		return nil, err
	}
	return []R{fn(sets[0].([]T1), sets[1].([]T2), sets[2].([]T3), sets[3].([]T4), sets[4].([]T5), sets[5].([]T6), sets[6].([]T7), sets[7].([]T8), sets[8].([]T9))}, nil
}

// QueryMultiple10 maps 10 cursors.
func QueryMultiple10[T1, T2, T3, T4, T5, T6, T7, T8, T9, T10, R any](ctx context.Context, c *Commander, text string, params *CursorParameters, fn func([]T1, []T2, []T3, []T4, []T5, []T6, []T7, []T8, []T9, []T10) R) ([]R, error) {
	sets, err := c.queryMultiple(ctx, text, params, decodeAs[T1], decodeAs[T2], decodeAs[T3], decodeAs[T4], decodeAs[T5], decodeAs[T6], decodeAs[T7], decodeAs[T8], decodeAs[T9], decodeAs[T10])
	if err != nil {
		return nil, err
	}
	return []R{fn(sets[0].([]T1), sets[1].([]T2), sets[2].([]T3), sets[3].([]T4), sets[4].([]T5), sets[5].([]T6), sets[6].([]T7), sets[7].([]T8), sets[8].([]T9), sets[9].([]T10))}, nil
}

// QueryMultiple11 maps 11 cursors.
func QueryMultiple11[T1, T2, T3, T4, T5, T6, T7, T8, T9, T10, T11, R any](ctx context.Context, c *Commander, text string, params *CursorParameters, fn func([]T1, []T2, []T3, []T4, []T5, []T6, []T7, []T8, []T9, []T10, []T11) R) ([]R, error) {
	sets, err := c.queryMultiple(ctx, text, params, decodeAs[T1], decodeAs[T2], decodeAs[T3], decodeAs[T4], decodeAs[T5], decodeAs[T6], decodeAs[T7], decodeAs[T8], decodeAs[T9], decodeAs[T10], decodeAs[T11])
	if err != nil {
		return nil, err
	}
	return []R{fn(sets[0].([]T1), sets[1].([]T2), sets[2].([]T3), sets[3].([]T4), sets[4].([]T5), sets[5].([]T6), sets[6].([]T7), sets[7].([]T8), sets[8].([]T9), sets[9].([]T10), sets[10].([]T11))}, nil
}

// QueryMultiple12 maps 12 cursors.
func QueryMultiple12[T1, T2, T3, T4, T5, T6, T7, T8, T9, T10, T11, T12, R any](ctx context.Context, c *Commander, text string, params *CursorParameters, fn func([]T1, []T2, []T3, []T4, []T5, []T6, []T7, []T8, []T9, []T10, []T11, []T12) R) ([]R, error) {
	sets, err := c.queryMultiple(ctx, text, params, decodeAs[T1], decodeAs[T2], decodeAs[T3], decodeAs[T4], decodeAs[T5], decodeAs[T6], decodeAs[T7], decodeAs[T8], decodeAs[T9], decodeAs[T10], decodeAs[T11], decodeAs[T12])
	if err != nil {
		return nil, err
	}
	return []R{fn(sets[0].([]T1), sets[1].([]T2), sets[2].([]T3), sets[3].([]T4), sets[4].([]T5), sets[5].([]T6), sets[6].([]T7), sets[7].([]T8), sets[8].([]T9), sets[9].([]T10), sets[10].([]T11), sets[11].([]T12))}, nil
}

// QueryMultiple13 maps 13 cursors.
func QueryMultiple13[T1, T2, T3, T4, T5, T6, T7, T8, T9, T10, T11, T12, T13, R any](ctx context.Context, c *Commander, text string, params *CursorParameters, fn func([]T1, []T2, []T3, []T4, []T5, []T6, []T7, []T8, []T9, []T10, []T11, []T12, []T13) R) ([]R, error) {
	sets, err := c.queryMultiple(ctx, text, params, decodeAs[T1], decodeAs[T2], decodeAs[T3], decodeAs[T4], decodeAs[T5], decodeAs[T6], decodeAs[T7], decodeAs[T8], decodeAs[T9], decodeAs[T10], decodeAs[T11], decodeAs[T12], decodeAs[T13])
	if err != nil {
		return nil, err
	}
	return []R{fn(sets[0].([]T1), sets[1].([]T2), sets[2].([]T3), sets[3].([]T4), sets[4].([]T5), sets[5].([]T6), sets[6].([]T7), sets[7].([]T8), sets[8].([]T9), sets[9].([]T10), sets[10].([]T11), sets[11].([]T12), sets[12].([]T13))}, nil
}

// QueryMultiple14 maps 14 cursors.
func QueryMultiple14[T1, T2, T3, T4, T5, T6, T7, T8, T9, T10, T11, T12, T13, T14, R any](ctx context.Context, c *Commander, text string, params *CursorParameters, fn func([]T1, []T2, []T3, []T4, []T5, []T6, []T7, []T8, []T9, []T10, []T11, []T12, []T13, []T14) R) ([]R, error) {
	sets, err := c.queryMultiple(ctx, text, params, decodeAs[T1], decodeAs[T2], decodeAs[T3], decodeAs[T4], decodeAs[T5], decodeAs[T6], decodeAs[T7], decodeAs[T8], decodeAs[T9], decodeAs[T10], decodeAs[T11], decodeAs[T12], decodeAs[T13], decodeAs[T14])
	if err != nil {
		return nil, err
	}
	return []R{fn(sets[0].([]T1), sets[1].([]T2), sets[2].([]T3), sets[3].([]T4), sets[4].([]T5), sets[5].([]T6), sets[6].([]T7), sets[7].([]T8), sets[8].([]T9), sets[9].([]T10), sets[10].([]T11), sets[11].([]T12), sets[12].([]T13), sets[13].([]T14))}, nil
}

// QueryMultiple15 maps 15 cursors.
func QueryMultiple15[T1, T2, T3, T4, T5, T6, T7, T8, T9, T10, T11, T12, T13, T14, T15, R any](ctx context.Context, c *Commander, text string, params *CursorParameters, fn func([]T1, []T2, []T3, []T4, []T5, []T6, []T7, []T8, []T9, []T10, []T11, []T12, []T13, []T14, []T15) R) ([]R, error) {
	sets, err := c.queryMultiple(ctx, text, params, decodeAs[T1], decodeAs[T2], decodeAs[T3], decodeAs[T4], decodeAs[T5], decodeAs[T6], decodeAs[T7], decodeAs[T8], decodeAs[T9], decodeAs[T10], decodeAs[T11], decodeAs[T12], decodeAs[T13], decodeAs[T14], decodeAs[T15])
	if err != nil {
		return nil, err
	}
	return []R{fn(sets[0].([]T1), sets[1].([]T2), sets[2].([]T3), sets[3].([]T4), sets[4].([]T5), sets[5].([]T6), sets[6].([]T7), sets[7].([]T8), sets[8].([]T9), sets[9].([]T10), sets[10].([]T11), sets[11].([]T12), sets[12].([]T13), sets[13].([]T14), sets[14].([]T15))}, nil
}

// QueryMultiple16 maps 16 cursors.
func QueryMultiple16[T1, T2, T3, T4, T5, T6, T7, T8, T9, T10, T11, T12, T13, T14, T15, T16, R any](ctx context.Context, c *Commander, text string, params *CursorParameters, fn func([]T1, []T2, []T3, []T4, []T5, []T6, []T7, []T8, []T9, []T10, []T11, []T12, []T13, []T14, []T15, []T16) R) ([]R, error) {
	sets, err := c.queryMultiple(ctx, text, params, decodeAs[T1], decodeAs[T2], decodeAs[T3], decodeAs[T4], decodeAs[T5], decodeAs[T6], decodeAs[T7], decodeAs[T8], decodeAs[T9], decodeAs[T10], decodeAs[T11], decodeAs[T12], decodeAs[T13], decodeAs[T14], decodeAs[T15], decodeAs[T16])
	if err != nil {
		return nil, err
	}
	return []R{fn(sets[0].([]T1), sets[1].([]T2), sets[2].([]T3), sets[3].([]T4), sets[4].([]T5), sets[5].([]T6), sets[6].([]T7), sets[7].([]T8), sets[8].([]T9), sets[9].([]T10), sets[10].([]T11), sets[11].([]T12), sets[12].([]T13), sets[13].([]T14), sets[14].([]T15), sets[15].([]T16))}, nil
}
