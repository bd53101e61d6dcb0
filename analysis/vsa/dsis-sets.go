package vsa

// Union computes s ∪ o. Members definitely equal to an existing member are
// not stored again. Overlapping but different intervals are all kept.
func (s DSIS) Union(o Value) (Value, error) {
	if err := s.matchWidth(OpUnion, o); err != nil {
		return nil, err
	}
	switch o := o.(type) {
	case StridedInterval:
		c := s.copy()
		c.insert(o)
		return c.Normalize(), nil
	case DSIS:
		c := s.copy()
		o.ForEach(c.insert)
		if err := c.updateBounds(o); err != nil {
			return nil, err
		}
		return c.Normalize(), nil
	}
	return nil, errUnsupported(OpUnion, o)
}

func (s DSIS) matchWidth(op Op, o Value) error {
	if o != nil && o.Bits() != s.bits {
		return errMismatch(op, s.bits, o.Bits())
	}
	return nil
}

// Intersection computes s ∩ o member-wise, dropping empty intersections.
func (s DSIS) Intersection(o Value) (Value, error) {
	if err := s.matchWidth(OpIntersection, o); err != nil {
		return nil, err
	}
	switch o := o.(type) {
	case StridedInterval:
		return s.intersectInterval(o), nil
	case DSIS:
		res := newDSIS(dsisIDs.Name("DSIS"), s.bits)
		o.ForEach(func(si StridedInterval) {
			switch r := s.intersectInterval(si).(type) {
			case StridedInterval:
				res.add(r)
			case DSIS:
				r.ForEach(res.add)
			}
		})
		return res.Normalize(), nil
	}
	return nil, errUnsupported(OpIntersection, o)
}

// intersectInterval is normalized like every other result, so a single
// surviving member is returned bare.
func (s DSIS) intersectInterval(si StridedInterval) Value {
	res := newDSIS(dsisIDs.Name("DSIS"), s.bits)
	s.ForEach(func(e StridedInterval) {
		res.add(e.intersect(si))
	})
	return res.Normalize()
}

// Widen computes s ∇ o. A discrete operand is collapsed first, then every
// member is widened against it.
func (s DSIS) Widen(o Value) (Value, error) {
	b, err := asInterval(OpWiden, o)
	if err != nil {
		return nil, err
	}
	return s.lift(OpWiden, b)
}
