package editor

import "errors"

var (
	// ErrSaveInProgress возвращается при повторном Save, пока предыдущий не завершён
	ErrSaveInProgress = errors.New("editor: save already in progress")

	// ErrEditorClosed возвращается при работе с редактором после сохранения или отмены
	ErrEditorClosed = errors.New("editor: editor is closed")

	// ErrUnknownOperation возвращается для неизвестной операции редактирования
	ErrUnknownOperation = errors.New("editor: unknown operation")

	// ErrInvalidOperation возвращается для операции с некорректными параметрами
	ErrInvalidOperation = errors.New("editor: invalid operation")
)
