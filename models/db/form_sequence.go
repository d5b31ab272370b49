package dbmodels

// FormSequence is a single-row counter backing serial number assignment.
// The value is bumped with one UPDATE ... RETURNING inside the form creation
// transaction, so concurrent submissions cannot observe the same number.
type FormSequence struct {
	Name  string `gorm:"primaryKey;type:varchar(64)"`
	Value int64
}

const FormSerialSequence = "form_serial"
