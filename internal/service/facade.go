package service

import "context"

// Facade implements reference-based operations: fetch the collection,
// resolve the reference against it, then mutate the resolved task.
//
// The sequence is not atomic. If the task changes between the fetch and the
// mutation, the backend error is returned as is; nothing is retried.
type Facade struct {
	svc Service
}

// NewFacade creates a Facade over svc.
func NewFacade(svc Service) *Facade {
	return &Facade{svc: svc}
}

// Lookup returns the task ref resolves to.
func (f *Facade) Lookup(ctx context.Context, ref string) (Task, error) {
	tasks, err := f.svc.ListTasks(ctx)
	if err != nil {
		return Task{}, err
	}
	id, err := Resolve(ref, tasks)
	if err != nil {
		return Task{}, err
	}
	for _, t := range tasks {
		if t.ID == id {
			return t, nil
		}
	}
	return Task{}, &NotFoundError{Ref: ref}
}

// Complete marks the task ref resolves to as completed.
func (f *Facade) Complete(ctx context.Context, ref string) (Task, error) {
	return f.setCompleted(ctx, ref, true)
}

// Uncomplete marks the task ref resolves to as not completed.
func (f *Facade) Uncomplete(ctx context.Context, ref string) (Task, error) {
	return f.setCompleted(ctx, ref, false)
}

func (f *Facade) setCompleted(ctx context.Context, ref string, completed bool) (Task, error) {
	prior, err := f.Lookup(ctx, ref)
	if err != nil {
		return Task{}, err
	}
	task, err := f.svc.SetCompleted(ctx, prior.ID, completed)
	if err != nil {
		return Task{}, err
	}
	return keepNotes(task, prior, false), nil
}

// Update applies upd to the task ref resolves to.
func (f *Facade) Update(ctx context.Context, ref string, upd TaskUpdate) (Task, error) {
	prior, err := f.Lookup(ctx, ref)
	if err != nil {
		return Task{}, err
	}
	task, err := f.svc.UpdateTask(ctx, prior.ID, upd)
	if err != nil {
		return Task{}, err
	}
	return keepNotes(task, prior, upd.Notes != nil), nil
}

// Delete removes the task ref resolves to and returns its identifier.
func (f *Facade) Delete(ctx context.Context, ref string) (string, error) {
	prior, err := f.Lookup(ctx, ref)
	if err != nil {
		return "", err
	}
	if err := f.svc.DeleteTask(ctx, prior.ID); err != nil {
		return "", err
	}
	return prior.ID, nil
}

// keepNotes restores the fetched notes when the mutation did not send notes
// and the response left them out.
func keepNotes(task, prior Task, notesSent bool) Task {
	if !notesSent && task.Notes == "" {
		task.Notes = prior.Notes
	}
	return task
}
