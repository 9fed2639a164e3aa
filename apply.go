package canvasanim

// apply writes the task's mode at eased progress e onto its target.
func (s *Scheduler) apply(slot int, tk *task, e float64) {
	t := tk.target
	switch tk.mode {
	case ModeFadeIn, ModeFadeOut:
		alpha := e
		if tk.mode == ModeFadeOut {
			alpha = 1 - e
		}
		c, ok := readColor(t, tk.colorKind)
		if !ok {
			s.missingAccessor(slot, tk)
			return
		}
		c.A = alpha
		writeColor(t, tk.colorKind, c)

	case ModeMoveUp, ModeMoveDown, ModeMoveRight, ModeMoveLeft:
		p := tk.from[ChannelPosition]
		rest := tk.offset * (1 - e)
		switch tk.mode {
		case ModeMoveUp:
			p.Y += rest
		case ModeMoveDown:
			p.Y -= rest
		case ModeMoveRight:
			p.X -= rest
		case ModeMoveLeft:
			p.X += rest
		}
		t.SetPosition(p)

	case ModeMoveToUp, ModeMoveToDown, ModeMoveToRight, ModeMoveToLeft:
		p := tk.from[ChannelPosition]
		done := tk.offset * e
		switch tk.mode {
		case ModeMoveToUp:
			p.Y -= done
		case ModeMoveToDown:
			p.Y += done
		case ModeMoveToRight:
			p.X += done
		case ModeMoveToLeft:
			p.X -= done
		}
		t.SetPosition(p)

	case ModeMoveTo, ModeMoveFrom:
		t.SetPosition(lerpVec(tk.from[ChannelPosition], tk.to[ChannelPosition], e, tk.mode == ModeMoveFrom))
	case ModeRotateTo, ModeRotateFrom:
		t.SetRotation(lerpVec(tk.from[ChannelRotation], tk.to[ChannelRotation], e, tk.mode == ModeRotateFrom))
	case ModeScaleTo, ModeScaleFrom:
		t.SetScale(lerpVec(tk.from[ChannelScale], tk.to[ChannelScale], e, tk.mode == ModeScaleFrom))

	case ModeColorTo, ModeColorFrom:
		if tk.noColor {
			s.missingAccessor(slot, tk)
			return
		}
		c := lerpColor(tk.fromColor, tk.toColor, e, tk.mode == ModeColorFrom)
		if !writeColor(t, tk.colorKind, c) {
			s.missingAccessor(slot, tk)
		}

	case ModeFlipX, ModeFlipY, ModeFlipZ:
		r := tk.from[ChannelRotation]
		switch tk.mode {
		case ModeFlipX:
			r.X = lerpAngle(r.X, r.X+180, e)
		case ModeFlipY:
			r.Y = lerpAngle(r.Y, r.Y+180, e)
		case ModeFlipZ:
			r.Z = lerpAngle(r.Z, r.Z+180, e)
		}
		t.SetRotation(r)
	}
}

// missingAccessor reports a skipped color write once per task.
func (s *Scheduler) missingAccessor(slot int, tk *task) {
	if tk.reported {
		return
	}
	tk.reported = true
	err := &TaskError{
		ID:      makeTaskID(slot, s.gens[slot]),
		Target:  targetName(tk.target),
		Channel: ChannelColor,
		Err:     ErrMissingAccessor,
	}
	s.log.Warn("color write skipped", "err", err)
	s.report(err)
}

// lerpVec interpolates the masked axes of to. With reverse set the axes run
// from the target back to start. Unmasked axes hold start exactly.
func lerpVec(start Vec3, to VecTarget, e float64, reverse bool) Vec3 {
	out := start
	a, b := start, to.Vec3
	if reverse {
		a, b = b, a
	}
	if to.Axes&AxisX != 0 {
		out.X = lerp(a.X, b.X, e)
	}
	if to.Axes&AxisY != 0 {
		out.Y = lerp(a.Y, b.Y, e)
	}
	if to.Axes&AxisZ != 0 {
		out.Z = lerp(a.Z, b.Z, e)
	}
	return out
}

// lerpColor is the per-channel counterpart of lerpVec.
func lerpColor(start Color, to ColorTarget, e float64, reverse bool) Color {
	out := start
	a, b := start, to.Color
	if reverse {
		a, b = b, a
	}
	if to.Channels&ChannelR != 0 {
		out.R = lerp(a.R, b.R, e)
	}
	if to.Channels&ChannelG != 0 {
		out.G = lerp(a.G, b.G, e)
	}
	if to.Channels&ChannelB != 0 {
		out.B = lerp(a.B, b.B, e)
	}
	if to.Channels&ChannelA != 0 {
		out.A = lerp(a.A, b.A, e)
	}
	return out
}
